// Package session signs and verifies the login cookie. The cookie carries an HS256 JWT whose
// subject is the user id and whose id is the opaque server side session token.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "session"
	issuer     = "blogsite"
)

var ErrInvalidToken = errors.New("session: invalid token")

type Codec struct {
	secret []byte
	secure bool
}

type claims struct {
	jwt.RegisteredClaims
}

// Claims is what a verified cookie holds.
type Claims struct {
	UserID int
	Token  string
	Expiry time.Time
}

// NewCodec creates a Codec. secure marks cookies Secure, which production deployments behind TLS want.
func NewCodec(secret string, secure bool) (*Codec, error) {
	if len(secret) < 16 {
		return nil, errors.New("session: secret key must be at least 16 characters")
	}

	return &Codec{secret: []byte(secret), secure: secure}, nil
}

func (c *Codec) Encode(userID int, token string, expiry time.Time) (string, error) {
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        token,
			Subject:   strconv.Itoa(userID),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("session: signing token: %w", err)
	}

	return signed, nil
}

func (c *Codec) Decode(value string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		value,
		&claims{},
		func(token *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	cl, ok := token.Claims.(*claims)
	if !ok || !token.Valid || cl.ID == "" {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.Atoi(cl.Subject)
	if err != nil || userID < 1 {
		return nil, ErrInvalidToken
	}

	return &Claims{UserID: userID, Token: cl.ID, Expiry: cl.ExpiresAt.Time}, nil
}

// Set writes the signed session cookie.
func (c *Codec) Set(w http.ResponseWriter, userID int, token string, expiry time.Time) error {
	value, err := c.Encode(userID, token, expiry)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expiry,
		MaxAge:   int(time.Until(expiry).Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Read returns the verified claims of the request's session cookie.
func (c *Codec) Read(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, err
	}

	return c.Decode(cookie.Value)
}

// Clear expires the session cookie.
func (c *Codec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
