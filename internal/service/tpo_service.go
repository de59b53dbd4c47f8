package service

import (
	"context"
	"strings"

	"tpo_system/internal/models"
	"tpo_system/internal/repository"
)

// TPOService manages the TPO contact records behind the auth gateway.
type TPOService struct {
	repo repository.TPORecords
}

func NewTPOService(repo repository.TPORecords) *TPOService {
	return &TPOService{repo: repo}
}

var _ TPO = (*TPOService)(nil)

func (s *TPOService) List(ctx context.Context) ([]models.TPORecord, error) {
	return s.repo.List(ctx)
}

func (s *TPOService) Add(ctx context.Context, rec models.TPORecord) (int, error) {
	if verr := validateTPORecord(rec); verr != nil {
		return 0, verr
	}
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	return s.repo.Add(ctx, rec)
}

func (s *TPOService) Update(ctx context.Context, rec models.TPORecord) error {
	if verr := validateTPORecord(rec); verr != nil {
		return verr
	}
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	return s.repo.Update(ctx, rec)
}

func (s *TPOService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func validateTPORecord(rec models.TPORecord) error {
	var fields []FieldError
	if strings.TrimSpace(rec.Name) == "" {
		fields = append(fields, FieldError{Path: "name", Msg: "name is required"})
	}
	if strings.TrimSpace(rec.College) == "" {
		fields = append(fields, FieldError{Path: "college", Msg: "college is required"})
	}
	if !validUsername(strings.ToLower(strings.TrimSpace(rec.Email))) {
		fields = append(fields, FieldError{Path: "email", Msg: "email must be a valid email address"})
	}
	if strings.TrimSpace(rec.ContactNo) == "" {
		fields = append(fields, FieldError{Path: "contact_no", Msg: "contact_no is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
