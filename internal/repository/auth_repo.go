package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tpo_system/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Authorization interface at compile time.
var _ Authorization = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (username, name, password_hash) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, name, password_hash FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, name, password_hash FROM users WHERE id = ?`
	updateUserNameSQL       = `UPDATE users SET name = ? WHERE id = ?`
)

// isUniqueViolation reports whether err is a unique-constraint failure from
// the sqlite driver (the driver exposes it only through the error text).
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and returns its ID.
// Returns ErrDuplicateUsername when the username is already taken.
func (r *UserRepository) Create(username, name, hash string) (int, error) {
	res, err := r.db.Exec(insertUserSQL, username, name, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUsername
		}
		return 0, fmt.Errorf("%w: insert user %q: %v", ErrStorage, username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: get last insert id for user %q: %v", ErrStorage, username, err)
	}
	return int(lastID), nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(selectUserByUsernameSQL, username).
		Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: select user %q: %v", ErrStorage, username, err)
	}
	return &u, nil
}

// GetByID fetches a user by primary key. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(selectUserByIDSQL, id).
		Scan(&u.ID, &u.Username, &u.Name, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: select user id=%d: %v", ErrStorage, id, err)
	}
	return &u, nil
}

// UpdateName sets the display name of an existing user.
// Returns ErrNotFound when the user does not exist.
func (r *UserRepository) UpdateName(id int, name string) error {
	res, err := r.db.Exec(updateUserNameSQL, name, id)
	if err != nil {
		return fmt.Errorf("%w: update name for user id=%d: %v", ErrStorage, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for user id=%d: %v", ErrStorage, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
