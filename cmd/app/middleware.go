package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sushihentaime/blogsite/internal/common"
	"github.com/sushihentaime/blogsite/internal/userservice"
)

const (
	csrfCookieName = "csrf_token"
	csrfFieldName  = "csrf_token"
	csrfTokenLen   = 32
	maxFormBytes   = 1_048_576
)

var errInvalidCSRFToken = errors.New("invalid or missing CSRF token")

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var (
			ip     = r.RemoteAddr
			method = r.Method
			proto  = r.Proto
			uri    = r.URL.RequestURI()
			reqID  = middleware.GetReqID(r.Context())
		)

		app.logger.Info("request from", slog.String("method", method), slog.String("uri", uri), slog.String("remote_addr", ip), slog.String("proto", proto), slog.String("request_id", reqID))

		next.ServeHTTP(w, r)
	})
}

func (app *application) secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")

		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the session cookie into the current user. A missing, forged,
// expired or revoked session leaves the request anonymous and drops the cookie.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Cookie")

		claims, err := app.sessions.Read(r)
		if err != nil {
			if !errors.Is(err, http.ErrNoCookie) {
				app.sessions.Clear(w)
			}
			next.ServeHTTP(w, app.contextSetUser(r, &userservice.AnonymousUser))
			return
		}

		user, err := app.userService.GetUserBySession(r.Context(), claims.Token)
		if err != nil {
			switch {
			case errors.Is(err, common.ErrRecordNotFound), errors.As(err, &common.ValidationError{}):
				app.sessions.Clear(w)
				next.ServeHTTP(w, app.contextSetUser(r, &userservice.AnonymousUser))
			default:
				app.serverErrorResponse(w, r, err)
			}
			return
		}

		if user.ID != claims.UserID {
			app.sessions.Clear(w)
			next.ServeHTTP(w, app.contextSetUser(r, &userservice.AnonymousUser))
			return
		}

		next.ServeHTTP(w, app.contextSetUser(r, user))
	})
}

// csrf checks a double submit token on every unsafe request. The token lives in a cookie
// and must be echoed back in the csrf_token form field.
func (app *application) csrf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if cookie, err := r.Cookie(csrfCookieName); err == nil && validCSRFToken(cookie.Value) {
			token = cookie.Value
		}

		issued := false
		if token == "" {
			var err error
			token, err = newCSRFToken()
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}
			issued = true

			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   app.config.production(),
				SameSite: http.SameSiteLaxMode,
			})
		}

		r = app.contextSetCSRFToken(r, token)

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			next.ServeHTTP(w, r)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			app.badRequestErrorResponse(w, r, err)
			return
		}

		submitted := r.PostForm.Get(csrfFieldName)
		if issued || subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			app.badRequestErrorResponse(w, r, errInvalidCSRFToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func validCSRFToken(token string) bool {
	b, err := base64.RawURLEncoding.DecodeString(token)
	return err == nil && len(b) == csrfTokenLen
}

// requireAdmin stops every non admin before the handler runs.
func (app *application) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.contextGetUser(r)
		if err := userservice.RequireAdmin(user); err != nil {
			app.forbiddenErrorResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}
