package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sushihentaime/blogsite/internal/blogservice"
	"github.com/sushihentaime/blogsite/internal/common"
)

const blankField = "This field cannot be blank"

type registerForm struct {
	Name     string
	Email    string
	Password string
	common.Validator
}

func newRegisterForm(r *http.Request) *registerForm {
	f := &registerForm{
		Name:     strings.TrimSpace(r.PostForm.Get("name")),
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}

	f.Check(common.NotBlank(f.Name), "name", blankField)
	f.Check(common.NotBlank(f.Email), "email", blankField)
	f.Check(f.Password != "", "password", blankField)

	return f
}

type loginForm struct {
	Email    string
	Password string
	common.Validator
}

func newLoginForm(r *http.Request) *loginForm {
	f := &loginForm{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}

	f.Check(common.NotBlank(f.Email), "email", blankField)
	f.Check(f.Password != "", "password", blankField)

	return f
}

type postForm struct {
	Title    string
	Subtitle string
	ImgURL   string
	Body     string
	common.Validator
}

func newPostForm(r *http.Request) *postForm {
	f := &postForm{
		Title:    strings.TrimSpace(r.PostForm.Get("title")),
		Subtitle: strings.TrimSpace(r.PostForm.Get("subtitle")),
		ImgURL:   strings.TrimSpace(r.PostForm.Get("img_url")),
		Body:     r.PostForm.Get("body"),
	}

	f.Check(common.NotBlank(f.Title), "title", blankField)
	f.Check(common.NotBlank(f.Subtitle), "subtitle", blankField)
	f.Check(common.NotBlank(f.ImgURL), "img_url", blankField)
	f.Check(common.NotBlank(f.Body), "body", blankField)
	if f.ImgURL != "" {
		f.Check(common.ValidURL(f.ImgURL), "img_url", "This field must be a valid URL")
	}

	return f
}

func postFormFrom(p *blogservice.Post) *postForm {
	return &postForm{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		ImgURL:   p.ImgURL,
		Body:     p.Body,
	}
}

func (f *postForm) input() blogservice.PostInput {
	return blogservice.PostInput{
		Title:    f.Title,
		Subtitle: f.Subtitle,
		ImgURL:   f.ImgURL,
		Body:     f.Body,
	}
}

type commentForm struct {
	Comment string
	common.Validator
}

func newCommentForm(r *http.Request) *commentForm {
	f := &commentForm{Comment: strings.TrimSpace(r.PostForm.Get("comment"))}

	f.Check(common.NotBlank(f.Comment), "comment", blankField)

	return f
}

type contactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
	common.Validator
}

func newContactForm(r *http.Request) *contactForm {
	f := &contactForm{
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Email:   strings.TrimSpace(r.PostForm.Get("email")),
		Phone:   strings.TrimSpace(r.PostForm.Get("phone")),
		Message: strings.TrimSpace(r.PostForm.Get("message")),
	}

	f.Check(common.NotBlank(f.Name), "name", blankField)
	f.Check(common.NotBlank(f.Email), "email", blankField)
	f.Check(common.NotBlank(f.Message), "message", blankField)

	return f
}

// addServiceErrors copies the field errors of a service ValidationError onto v.
// It reports false when err is some other error.
func addServiceErrors(v *common.Validator, err error) bool {
	var vErr common.ValidationError
	if !errors.As(err, &vErr) {
		return false
	}

	for field, message := range vErr.Errors {
		v.AddError(field, message)
	}

	return true
}
