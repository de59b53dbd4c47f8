package service

import (
	"context"

	"tpo_system/internal/models"
	"tpo_system/internal/repository"
)

type Authorization interface {
	SignUp(username, password, name string) (int, error)
	SignIn(username, password string) (string, *models.User, error)
	ParseToken(accessToken string) (*Claims, error)
	GetUser(id int) (*models.User, error)
	UpdateName(id int, name string) (*models.User, error)
}

// TPO exposes CRUD over training-and-placement-officer contact records.
type TPO interface {
	List(ctx context.Context) ([]models.TPORecord, error)
	Add(ctx context.Context, rec models.TPORecord) (int, error)
	Update(ctx context.Context, rec models.TPORecord) error
	Delete(ctx context.Context, id int) error
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Authorization
	TPO
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, authCfg AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, authCfg),
		TPO:           NewTPOService(repos.TPO),
	}
}
