package repository

import (
	"context"
	"database/sql"
	"errors"

	"tpo_system/internal/models"
)

// Sentinel errors surfaced by repositories so services can map unique-key
// violations to conflict responses without parsing driver errors themselves.
var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrNotFound          = errors.New("record not found")

	// ErrStorage marks driver/connection failures so the HTTP layer can
	// report them as 503 instead of a generic 500.
	ErrStorage = errors.New("storage unavailable")
)

type Authorization interface {
	Create(username, name, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
	GetByID(id int) (*models.User, error)
	UpdateName(id int, name string) error
}

type TPORecords interface {
	List(ctx context.Context) ([]models.TPORecord, error)
	Add(ctx context.Context, rec models.TPORecord) (int, error)
	Update(ctx context.Context, rec models.TPORecord) error
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	Auth Authorization
	TPO  TPORecords
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Auth: NewUserRepository(db),
		TPO:  NewTPORepository(db),
	}
}
