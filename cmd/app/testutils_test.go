package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogsite/internal/blogservice"
	"github.com/sushihentaime/blogsite/internal/mailservice"
	"github.com/sushihentaime/blogsite/internal/session"
	"github.com/sushihentaime/blogsite/internal/userservice"
)

const testSecret = "test-secret-key-0123456789"

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) RegisterUser(ctx context.Context, name, email, password string) (*userservice.User, *userservice.Session, error) {
	args := m.Called(ctx, name, email, password)
	u, _ := args.Get(0).(*userservice.User)
	s, _ := args.Get(1).(*userservice.Session)
	return u, s, args.Error(2)
}

func (m *mockUserService) LoginUser(ctx context.Context, email, password string) (*userservice.User, *userservice.Session, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(0).(*userservice.User)
	s, _ := args.Get(1).(*userservice.Session)
	return u, s, args.Error(2)
}

func (m *mockUserService) LogoutUser(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockUserService) GetUserBySession(ctx context.Context, token string) (*userservice.User, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*userservice.User)
	return u, args.Error(1)
}

func (m *mockUserService) GetUserByID(ctx context.Context, id int) (*userservice.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*userservice.User)
	return u, args.Error(1)
}

type mockBlogService struct {
	mock.Mock
}

func (m *mockBlogService) CreatePost(ctx context.Context, authorID int, in blogservice.PostInput) (*blogservice.Post, error) {
	args := m.Called(ctx, authorID, in)
	p, _ := args.Get(0).(*blogservice.Post)
	return p, args.Error(1)
}

func (m *mockBlogService) GetPost(ctx context.Context, id int) (*blogservice.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*blogservice.Post)
	return p, args.Error(1)
}

func (m *mockBlogService) GetPosts(ctx context.Context) ([]blogservice.Post, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]blogservice.Post)
	return p, args.Error(1)
}

func (m *mockBlogService) GetPostsByAuthor(ctx context.Context, authorID int) ([]blogservice.Post, error) {
	args := m.Called(ctx, authorID)
	p, _ := args.Get(0).([]blogservice.Post)
	return p, args.Error(1)
}

func (m *mockBlogService) UpdatePost(ctx context.Context, id int, in blogservice.PostInput) (*blogservice.Post, error) {
	args := m.Called(ctx, id, in)
	p, _ := args.Get(0).(*blogservice.Post)
	return p, args.Error(1)
}

func (m *mockBlogService) DeletePost(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBlogService) AddComment(ctx context.Context, postID, authorID int, text string) (*blogservice.Comment, error) {
	args := m.Called(ctx, postID, authorID, text)
	c, _ := args.Get(0).(*blogservice.Comment)
	return c, args.Error(1)
}

func (m *mockBlogService) GetComments(ctx context.Context, postID int) ([]blogservice.Comment, error) {
	args := m.Called(ctx, postID)
	c, _ := args.Get(0).([]blogservice.Comment)
	return c, args.Error(1)
}

type mockMailService struct {
	mock.Mock
}

func (m *mockMailService) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *mockMailService) SendContactMessage(ctx context.Context, msg mailservice.ContactMessage) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

type testApp struct {
	*application
	users *mockUserService
	blogs *mockBlogService
	mail  *mockMailService
}

func newTestApplication(t *testing.T) *testApp {
	templates, err := newTemplates()
	require.NoError(t, err)

	codec, err := session.NewCodec(testSecret, false)
	require.NoError(t, err)

	ta := &testApp{
		users: new(mockUserService),
		blogs: new(mockBlogService),
		mail:  new(mockMailService),
	}

	ta.application = &application{
		config: &Config{
			Environment: "development",
			Version:     "test",
			SecretKey:   testSecret,
		},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		templates:   templates,
		sessions:    codec,
		userService: ta.users,
		blogService: ta.blogs,
		mailService: ta.mail,
	}

	return ta
}

type testServer struct {
	*httptest.Server
}

// newTestServer returns a server whose client keeps cookies and does not follow redirects.
func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	ts.Client().Jar = jar
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

func (ts *testServer) cookie(t *testing.T, name string) *http.Cookie {
	u, err := url.Parse(ts.URL)
	require.NoError(t, err)

	for _, c := range ts.Client().Jar.Cookies(u) {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// login plants a signed session cookie for user and makes the session resolve to it.
func (ts *testServer) login(t *testing.T, ta *testApp, user *userservice.User) {
	token := "session-token-for-" + user.Email
	ta.users.On("GetUserBySession", mock.Anything, token).Return(user, nil)

	value, err := ta.sessions.Encode(user.ID, token, time.Now().Add(time.Hour))
	require.NoError(t, err)

	u, err := url.Parse(ts.URL)
	require.NoError(t, err)
	ts.Client().Jar.SetCookies(u, []*http.Cookie{{Name: session.CookieName, Value: value, Path: "/"}})
}

func (ts *testServer) do(t *testing.T, req *http.Request) (int, http.Header, string) {
	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, res.Header, string(body)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, string) {
	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)

	return ts.do(t, req)
}

// postForm sends form with the current CSRF token, fetching one first if the client has none.
func (ts *testServer) postForm(t *testing.T, path string, form url.Values) (int, http.Header, string) {
	if ts.cookie(t, csrfCookieName) == nil {
		ts.get(t, "/about")
	}

	form.Set(csrfFieldName, ts.cookie(t, csrfCookieName).Value)

	return ts.send(t, http.MethodPost, path, form)
}

func (ts *testServer) send(t *testing.T, method, path string, form url.Values) (int, http.Header, string) {
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return ts.do(t, req)
}

var (
	testAdmin  = &userservice.User{ID: 1, Name: "Admin", Email: "admin@example.com", Role: userservice.RoleAdmin}
	testMember = &userservice.User{ID: 2, Name: "Member", Email: "member@example.com", Role: userservice.RoleMember}
)
