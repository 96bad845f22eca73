package userservice

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	passwordCost = 12

	legacyPrefix     = "pbkdf2:sha256"
	legacyIterations = 150000
)

var errMalformedLegacyHash = errors.New("malformed pbkdf2 password hash")

func (p *Password) set(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), passwordCost)
	if err != nil {
		return err
	}

	p.hash = hash

	return nil
}

func (p *Password) compare(pwd string) (bool, error) {
	if p.isLegacy() {
		return compareLegacy(string(p.hash), pwd)
	}

	err := bcrypt.CompareHashAndPassword(p.hash, []byte(pwd))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// needsRehash reports whether the stored hash is a legacy pbkdf2 hash or a bcrypt hash below the current cost.
func (p *Password) needsRehash() bool {
	if p.isLegacy() {
		return true
	}

	cost, err := bcrypt.Cost(p.hash)
	return err == nil && cost < passwordCost
}

func (p *Password) isLegacy() bool {
	return bytes.HasPrefix(p.hash, []byte(legacyPrefix))
}

// compareLegacy verifies hashes in the werkzeug format "pbkdf2:sha256:<iterations>$<salt>$<hex digest>".
func compareLegacy(encoded, pwd string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 {
		return false, errMalformedLegacyHash
	}

	method, salt, digest := parts[0], parts[1], parts[2]

	iterations := legacyIterations
	if rest := strings.TrimPrefix(method, legacyPrefix); rest != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(rest, ":"))
		if err != nil || n <= 0 {
			return false, errMalformedLegacyHash
		}
		iterations = n
	}

	want, err := hex.DecodeString(digest)
	if err != nil {
		return false, errMalformedLegacyHash
	}

	got := pbkdf2.Key([]byte(pwd), []byte(salt), iterations, sha256.Size, sha256.New)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
