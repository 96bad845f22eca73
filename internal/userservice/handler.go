package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/blogsite/internal/common"
)

var (
	ErrNoSuchAccount = errors.New("no account for that email")
	ErrWrongPassword = errors.New("password does not match")
)

func NewUserService(db *sql.DB) *UserService {
	return &UserService{
		m: newUserModel(db),
	}
}

// RegisterUser creates an account and logs it in. The user row and its session are written in one transaction.
func (s *UserService) RegisterUser(ctx context.Context, name, email, password string) (*User, *Session, error) {
	email = normalizeEmail(email)

	v := common.NewValidator()
	validateName(v, name)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	u := User{
		Name:  name,
		Email: email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, nil, err
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}

	err = s.m.insertUser(ctx, tx, &u)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, err
	}

	session, err := newSession(u.ID, SessionTime)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, err
	}

	err = s.m.insertSession(ctx, tx, session)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return &u, session, nil
}

// LoginUser checks the credentials and opens a new session. Legacy or weak password hashes are upgraded in the same transaction.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*User, *Session, error) {
	email = normalizeEmail(email)

	v := common.NewValidator()
	validateEmail(v, email)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, nil, v.ValidationError()
	}

	user, err := s.m.getUserByEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecordNotFound):
			return nil, nil, ErrNoSuchAccount
		default:
			return nil, nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, nil, err
	}

	if !ok {
		return nil, nil, ErrWrongPassword
	}

	tx, err := s.m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}

	// bcrypt cannot hash passwords over maxPasswordBytes
	if user.Password.needsRehash() && len(password) <= maxPasswordBytes {
		if err := user.Password.set(password); err != nil {
			_ = tx.Rollback()
			return nil, nil, err
		}

		if err := s.m.updateUserPassword(ctx, tx, user.ID, user.Password); err != nil {
			_ = tx.Rollback()
			return nil, nil, err
		}
	}

	session, err := newSession(user.ID, SessionTime)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, err
	}

	err = s.m.insertSession(ctx, tx, session)
	if err != nil {
		_ = tx.Rollback()
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// LogoutUser ends the session identified by token. Unknown or empty tokens are ignored.
func (s *UserService) LogoutUser(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	return s.m.deleteSession(ctx, hashToken(token))
}

// GetUserBySession resolves the user behind a live session token.
func (s *UserService) GetUserBySession(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserBySession(ctx, hashToken(token))
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	v.Check(id > 0, "id", "must be greater than zero")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByID(ctx, id)
}
