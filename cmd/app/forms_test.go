package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/blogsite/internal/common"
)

func formRequest(t *testing.T, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.NoError(t, req.ParseForm())
	return req
}

func TestNewPostForm(t *testing.T) {
	testCases := []struct {
		name       string
		form       url.Values
		wantFields []string
	}{
		{
			name: "valid",
			form: url.Values{"title": {" T "}, "subtitle": {"S"}, "img_url": {"https://x/y.png"}, "body": {"B"}},
		},
		{
			name:       "empty",
			form:       url.Values{},
			wantFields: []string{"title", "subtitle", "img_url", "body"},
		},
		{
			name:       "relative image url",
			form:       url.Values{"title": {"T"}, "subtitle": {"S"}, "img_url": {"/img.png"}, "body": {"B"}},
			wantFields: []string{"img_url"},
		},
		{
			name:       "whitespace body",
			form:       url.Values{"title": {"T"}, "subtitle": {"S"}, "img_url": {"https://x/y.png"}, "body": {"  \n "}},
			wantFields: []string{"body"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPostForm(formRequest(t, tc.form))

			assert.Len(t, f.Errors, len(tc.wantFields))
			for _, field := range tc.wantFields {
				assert.Contains(t, f.Errors, field)
			}
		})
	}

	f := newPostForm(formRequest(t, url.Values{"title": {" T "}}))
	assert.Equal(t, "T", f.Title)
}

func TestNewRegisterForm(t *testing.T) {
	f := newRegisterForm(formRequest(t, url.Values{"name": {"Ada"}, "email": {" ada@example.com "}, "password": {" pw "}}))
	assert.True(t, f.Valid())
	assert.Equal(t, "ada@example.com", f.Email)
	assert.Equal(t, " pw ", f.Password)

	f = newRegisterForm(formRequest(t, url.Values{"name": {" "}}))
	assert.False(t, f.Valid())
	assert.Len(t, f.Errors, 3)
}

func TestNewCommentForm(t *testing.T) {
	f := newCommentForm(formRequest(t, url.Values{"comment": {"  hi  "}}))
	assert.True(t, f.Valid())
	assert.Equal(t, "hi", f.Comment)

	f = newCommentForm(formRequest(t, url.Values{}))
	assert.Contains(t, f.Errors, "comment")
}

func TestAddServiceErrors(t *testing.T) {
	var v common.Validator

	ok := addServiceErrors(&v, common.ValidationError{Errors: map[string]string{"email": "must be provided"}})
	assert.True(t, ok)
	assert.Equal(t, "must be provided", v.Errors["email"])

	ok = addServiceErrors(&v, common.ErrRecordNotFound)
	assert.False(t, ok)
}
