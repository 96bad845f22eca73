package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/blogsite/internal/userservice"
)

type contextKey string

const (
	userContextKey = contextKey("user")
	csrfContextKey = contextKey("csrf")
)

func (app *application) contextSetUser(r *http.Request, user *userservice.User) *http.Request {
	ctx := context.WithValue(r.Context(), userContextKey, user)
	return r.WithContext(ctx)
}

// contextGetUser returns the user resolved by authenticate, or AnonymousUser.
func (app *application) contextGetUser(r *http.Request) *userservice.User {
	user, ok := r.Context().Value(userContextKey).(*userservice.User)
	if !ok || user == nil {
		return &userservice.AnonymousUser
	}
	return user
}

func (app *application) contextSetCSRFToken(r *http.Request, token string) *http.Request {
	ctx := context.WithValue(r.Context(), csrfContextKey, token)
	return r.WithContext(ctx)
}

func (app *application) contextGetCSRFToken(r *http.Request) string {
	token, _ := r.Context().Value(csrfContextKey).(string)
	return token
}
