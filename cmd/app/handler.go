package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sushihentaime/blogsite/internal/blogservice"
	"github.com/sushihentaime/blogsite/internal/mailservice"
	"github.com/sushihentaime/blogsite/internal/userservice"
)

const (
	flashAlreadyRegistered = "You have already sign up with that email, Log in instead!"
	flashNoSuchAccount     = "That email does not have account, try to register instead!"
	flashWrongPassword     = "password does not match, please try again!"
	flashLoginToComment    = "You need to log in or register to comment!"
)

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.blogService.GetPosts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := app.newTemplateData(w, r)
	data.Posts = posts

	app.render(w, r, http.StatusOK, "index", data)
}

func (app *application) registerHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = &registerForm{}

	app.render(w, r, http.StatusOK, "register", data)
}

func (app *application) registerPostHandler(w http.ResponseWriter, r *http.Request) {
	form := newRegisterForm(r)
	if !form.Valid() {
		app.renderForm(w, r, http.StatusUnprocessableEntity, "register", form)
		return
	}

	user, session, err := app.userService.RegisterUser(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrDuplicateEmail):
			app.putFlash(w, flashAlreadyRegistered)
			app.redirect(w, r, "/login")
		case addServiceErrors(&form.Validator, err):
			app.renderForm(w, r, http.StatusUnprocessableEntity, "register", form)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.sessions.Set(w, user.ID, session.Plain, session.Expiry); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, "/")
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = &loginForm{}

	app.render(w, r, http.StatusOK, "login", data)
}

func (app *application) loginPostHandler(w http.ResponseWriter, r *http.Request) {
	form := newLoginForm(r)
	if !form.Valid() {
		app.renderForm(w, r, http.StatusUnprocessableEntity, "login", form)
		return
	}

	user, session, err := app.userService.LoginUser(r.Context(), form.Email, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrNoSuchAccount):
			app.renderLoginFailure(w, r, form, flashNoSuchAccount)
		case errors.Is(err, userservice.ErrWrongPassword):
			app.renderLoginFailure(w, r, form, flashWrongPassword)
		case addServiceErrors(&form.Validator, err):
			app.renderForm(w, r, http.StatusUnprocessableEntity, "login", form)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if err := app.sessions.Set(w, user.ID, session.Plain, session.Expiry); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.redirect(w, r, "/")
}

func (app *application) renderLoginFailure(w http.ResponseWriter, r *http.Request, form *loginForm, message string) {
	form.Password = ""

	data := app.newTemplateData(w, r)
	data.Form = form
	data.Flash = message

	app.render(w, r, http.StatusUnauthorized, "login", data)
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, err := app.sessions.Read(r)
	if err == nil {
		if err := app.userService.LogoutUser(r.Context(), claims.Token); err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	app.sessions.Clear(w)
	app.redirect(w, r, "/")
}

func (app *application) showPostHandler(w http.ResponseWriter, r *http.Request) {
	post, comments, ok := app.loadPost(w, r)
	if !ok {
		return
	}

	data := app.newTemplateData(w, r)
	data.Post = post
	data.Comments = comments
	data.Form = &commentForm{}

	app.render(w, r, http.StatusOK, "post", data)
}

func (app *application) commentPostHandler(w http.ResponseWriter, r *http.Request) {
	user := app.contextGetUser(r)

	post, comments, ok := app.loadPost(w, r)
	if !ok {
		return
	}

	if user.IsAnonymous() {
		app.putFlash(w, flashLoginToComment)
		app.redirect(w, r, "/login")
		return
	}

	form := newCommentForm(r)
	if form.Valid() {
		_, err := app.blogService.AddComment(r.Context(), post.ID, user.ID, form.Comment)
		switch {
		case err == nil:
			app.redirect(w, r, fmt.Sprintf("/post/%d", post.ID))
			return
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
			return
		case !addServiceErrors(&form.Validator, err):
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	data := app.newTemplateData(w, r)
	data.Post = post
	data.Comments = comments
	data.Form = form

	app.render(w, r, http.StatusUnprocessableEntity, "post", data)
}

// loadPost fetches the post named by the id parameter and its comments. It writes the
// error response itself and reports false when the caller should stop.
func (app *application) loadPost(w http.ResponseWriter, r *http.Request) (*blogservice.Post, []blogservice.Comment, bool) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return nil, nil, false
	}

	post, err := app.blogService.GetPost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, nil, false
	}

	comments, err := app.blogService.GetComments(r.Context(), post.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return nil, nil, false
	}

	return post, comments, true
}

func (app *application) authorPostsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	author, err := app.userService.GetUserByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	posts, err := app.blogService.GetPostsByAuthor(r.Context(), author.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	data := app.newTemplateData(w, r)
	data.Author = author
	data.Posts = posts

	app.render(w, r, http.StatusOK, "author", data)
}

func (app *application) aboutHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "about", app.newTemplateData(w, r))
}

func (app *application) contactHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = &contactForm{}
	if !app.mailService.Enabled() {
		data.Message = "The contact form is currently disabled."
	}

	app.render(w, r, http.StatusOK, "contact", data)
}

func (app *application) contactPostHandler(w http.ResponseWriter, r *http.Request) {
	form := newContactForm(r)
	if !form.Valid() {
		app.renderForm(w, r, http.StatusUnprocessableEntity, "contact", form)
		return
	}

	msg := mailservice.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	}

	ref, err := app.mailService.SendContactMessage(r.Context(), msg)
	if err != nil {
		switch {
		case errors.Is(err, mailservice.ErrMailDisabled):
			data := app.newTemplateData(w, r)
			data.Form = form
			data.Message = "The contact form is currently disabled."
			app.render(w, r, http.StatusServiceUnavailable, "contact", data)
		case addServiceErrors(&form.Validator, err):
			app.renderForm(w, r, http.StatusUnprocessableEntity, "contact", form)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	data := app.newTemplateData(w, r)
	data.Form = &contactForm{}
	data.Message = fmt.Sprintf("Successfully sent your message. Reference: %s", ref)

	app.render(w, r, http.StatusOK, "contact", data)
}

func (app *application) newPostHandler(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(w, r)
	data.Form = &postForm{}

	app.render(w, r, http.StatusOK, "make-post", data)
}

func (app *application) newPostPostHandler(w http.ResponseWriter, r *http.Request) {
	form := newPostForm(r)
	if !form.Valid() {
		app.renderForm(w, r, http.StatusUnprocessableEntity, "make-post", form)
		return
	}

	user := app.contextGetUser(r)

	_, err := app.blogService.CreatePost(r.Context(), user.ID, form.input())
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			form.AddError("title", "A post with this title already exists")
			app.renderForm(w, r, http.StatusUnprocessableEntity, "make-post", form)
		case addServiceErrors(&form.Validator, err):
			app.renderForm(w, r, http.StatusUnprocessableEntity, "make-post", form)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.redirect(w, r, "/")
}

func (app *application) editPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	post, err := app.blogService.GetPost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	data := app.newTemplateData(w, r)
	data.Post = post
	data.Editing = true
	data.Form = postFormFrom(post)

	app.render(w, r, http.StatusOK, "make-post", data)
}

func (app *application) editPostPostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	form := newPostForm(r)
	renderInvalid := func() {
		data := app.newTemplateData(w, r)
		data.Post = &blogservice.Post{ID: id}
		data.Editing = true
		data.Form = form
		app.render(w, r, http.StatusUnprocessableEntity, "make-post", data)
	}

	if !form.Valid() {
		renderInvalid()
		return
	}

	_, err = app.blogService.UpdatePost(r.Context(), id, form.input())
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.Is(err, blogservice.ErrDuplicateTitle):
			form.AddError("title", "A post with this title already exists")
			renderInvalid()
		case addServiceErrors(&form.Validator, err):
			renderInvalid()
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.redirect(w, r, fmt.Sprintf("/post/%d", id))
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.blogService.DeletePost(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, blogservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.redirect(w, r, "/")
}

func (app *application) renderForm(w http.ResponseWriter, r *http.Request, status int, page string, form any) {
	data := app.newTemplateData(w, r)
	data.Form = form

	app.render(w, r, status, page, data)
}
