package userservice

import (
	"database/sql"
	"time"
)

// Role decides what a user may do. Exactly the roles below are stored.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"

	SessionTime time.Duration = 30 * 24 * time.Hour
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m *DBModel
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  Password  `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Password holds only the stored hash. The plaintext is never kept.
type Password struct {
	hash []byte
}

// Session is a server side login record. Only the sha256 hash of Plain is stored.
type Session struct {
	Plain  string    `json:"-"`
	Hash   []byte    `json:"-"`
	UserID int       `json:"-"`
	Expiry time.Time `json:"expiry"`
}
