package main

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/sushihentaime/blogsite/internal/blogservice"
	"github.com/sushihentaime/blogsite/internal/userservice"
)

//go:embed templates/*.html
var templateFS embed.FS

// templateData is handed to every view. Page specific fields are left empty when unused.
type templateData struct {
	CurrentUser *userservice.User
	CSRFToken   string
	Flash       string
	CurrentYear int

	Post     *blogservice.Post
	Posts    []blogservice.Post
	Comments []blogservice.Comment
	Author   *userservice.User
	Form     any
	Editing  bool
	Message  string

	Status     int
	StatusText string
}

func newTemplates() (*template.Template, error) {
	return template.New("").
		Option("missingkey=zero").
		Funcs(template.FuncMap{
			"avatar":   userservice.AvatarURL,
			"safeHTML": safeHTML,
		}).
		ParseFS(templateFS, "templates/*.html")
}

// safeHTML marks a post body as trusted. Bodies are sanitized when they are written.
func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

func (app *application) newTemplateData(w http.ResponseWriter, r *http.Request) *templateData {
	return &templateData{
		CurrentUser: app.contextGetUser(r),
		CSRFToken:   app.contextGetCSRFToken(r),
		Flash:       app.popFlash(w, r),
		CurrentYear: time.Now().Year(),
	}
}

// render executes the named view into a buffer first so a template error never leaves a half written page.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, name string, data *templateData) {
	buf := new(bytes.Buffer)

	err := app.templates.ExecuteTemplate(buf, name, data)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
