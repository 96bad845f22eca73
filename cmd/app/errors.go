package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		url    = r.URL.RequestURI()
		reqID  = middleware.GetReqID(r.Context())
	)

	app.logger.Error(err.Error(), slog.String("method", method), slog.String("url", url), slog.String("request_id", reqID))
}

// errorResponse renders the error page. If that fails the plain status text is sent instead.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := app.newTemplateData(w, r)
	data.Status = status
	data.StatusText = http.StatusText(status)
	data.Message = message

	buf := new(bytes.Buffer)
	err := app.templates.ExecuteTemplate(buf, "error", data)
	if err != nil {
		app.logError(r, err)
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// forbiddenErrorResponse carries no page, only the status text.
func (app *application) forbiddenErrorResponse(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}
