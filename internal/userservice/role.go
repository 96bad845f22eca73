package userservice

import "errors"

var ErrForbidden = errors.New("forbidden")

func (u *User) IsAnonymous() bool {
	return u == nil || u == &AnonymousUser
}

func (u *User) IsAdmin() bool {
	return !u.IsAnonymous() && u.Role == RoleAdmin
}

// RequireAdmin fails with ErrForbidden unless u is an administrator.
func RequireAdmin(u *User) error {
	if !u.IsAdmin() {
		return ErrForbidden
	}

	return nil
}
