package userservice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sushihentaime/blogsite/internal/common"
)

var (
	ErrDuplicateEmail = errors.New("duplicate email")
	ErrRecordNotFound = common.ErrRecordNotFound
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// insertUser stores u and decides its role: the first account becomes the administrator.
// The table lock keeps two concurrent first registrations from both becoming admin.
func (m *DBModel) insertUser(ctx context.Context, tx *sql.Tx, u *User) error {
	_, err := tx.ExecContext(ctx, "LOCK TABLE users IN SHARE ROW EXCLUSIVE MODE")
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (email, name, password, role)
		VALUES ($1, $2, $3, CASE WHEN EXISTS (SELECT 1 FROM users) THEN 'member' ELSE 'admin' END)
		RETURNING id, role, created_at`

	args := []any{
		u.Email,
		u.Name,
		string(u.Password.hash),
	}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Role, &u.CreatedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "users_email_key"):
			return ErrDuplicateEmail
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) getUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, name, password, role, created_at
		FROM users
		WHERE email = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.Password.hash, &u.Role, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) getUserByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, email, name, role, created_at
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) updateUserPassword(ctx context.Context, tx *sql.Tx, id int, pwd Password) error {
	query := `
		UPDATE users
		SET password = $1
		WHERE id = $2`

	_, err := tx.ExecContext(ctx, query, string(pwd.hash), id)
	return err
}

func (m *DBModel) insertSession(ctx context.Context, tx *sql.Tx, s *Session) error {
	query := `
		INSERT INTO sessions (hash, user_id, expiry)
		VALUES ($1, $2, $3)`

	_, err := tx.ExecContext(ctx, query, s.Hash, s.UserID, s.Expiry)
	return err
}

func (m *DBModel) getUserBySession(ctx context.Context, hash []byte) (*User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.role, u.created_at
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.hash = $1 AND s.expiry > $2`

	var u User

	err := m.db.QueryRowContext(ctx, query, hash, time.Now()).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// deleteSession removes the session if it exists. A missing session is not an error.
func (m *DBModel) deleteSession(ctx context.Context, hash []byte) error {
	query := `
		DELETE FROM sessions
		WHERE hash = $1`

	_, err := m.db.ExecContext(ctx, query, hash)
	return err
}
