package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/healthcheck", app.healthCheckHandler)

	// the admin check runs before the csrf check reads the body
	page := chi.Chain(app.csrf)
	admin := chi.Chain(app.requireAdmin, app.csrf)

	router.Handler(http.MethodGet, "/", page.HandlerFunc(app.homeHandler))
	router.Handler(http.MethodGet, "/about", page.HandlerFunc(app.aboutHandler))
	router.Handler(http.MethodGet, "/contact", page.HandlerFunc(app.contactHandler))
	router.Handler(http.MethodPost, "/contact", page.HandlerFunc(app.contactPostHandler))

	// user service
	router.Handler(http.MethodGet, "/register", page.HandlerFunc(app.registerHandler))
	router.Handler(http.MethodPost, "/register", page.HandlerFunc(app.registerPostHandler))
	router.Handler(http.MethodGet, "/login", page.HandlerFunc(app.loginHandler))
	router.Handler(http.MethodPost, "/login", page.HandlerFunc(app.loginPostHandler))
	router.Handler(http.MethodGet, "/logout", page.HandlerFunc(app.logoutHandler))
	router.Handler(http.MethodGet, "/author/:id", page.HandlerFunc(app.authorPostsHandler))

	// blog service
	router.Handler(http.MethodGet, "/post/:id", page.HandlerFunc(app.showPostHandler))
	router.Handler(http.MethodPost, "/post/:id", page.HandlerFunc(app.commentPostHandler))

	router.Handler(http.MethodGet, "/new-post", admin.HandlerFunc(app.newPostHandler))
	router.Handler(http.MethodPost, "/new-post", admin.HandlerFunc(app.newPostPostHandler))
	router.Handler(http.MethodGet, "/edit-post/:id", admin.HandlerFunc(app.editPostHandler))
	router.Handler(http.MethodPost, "/edit-post/:id", admin.HandlerFunc(app.editPostPostHandler))
	router.Handler(http.MethodGet, "/delete/:id", admin.HandlerFunc(app.deletePostHandler))

	standard := chi.Chain(
		app.recoverPanic,
		middleware.RequestID,
		middleware.RealIP,
		app.logRequest,
		app.secureHeaders,
		app.authenticate,
	)

	return standard.Handler(router)
}
