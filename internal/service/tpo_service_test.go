package service

import (
	"context"
	"errors"
	"testing"

	"tpo_system/internal/models"
)

type mockTPORepo struct {
	AddFn    func(ctx context.Context, rec models.TPORecord) (int, error)
	UpdateFn func(ctx context.Context, rec models.TPORecord) error

	added []models.TPORecord
}

func (m *mockTPORepo) List(ctx context.Context) ([]models.TPORecord, error) { return nil, nil }

func (m *mockTPORepo) Add(ctx context.Context, rec models.TPORecord) (int, error) {
	m.added = append(m.added, rec)
	if m.AddFn != nil {
		return m.AddFn(ctx, rec)
	}
	return 1, nil
}

func (m *mockTPORepo) Update(ctx context.Context, rec models.TPORecord) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, rec)
	}
	return nil
}

func (m *mockTPORepo) Delete(ctx context.Context, id int) error { return nil }

func TestTPOService_Add_ValidatesAndNormalizesEmail(t *testing.T) {
	repo := &mockTPORepo{}
	svc := NewTPOService(repo)

	// missing fields rejected before touching the repo
	_, err := svc.Add(context.Background(), models.TPORecord{Name: "A"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(repo.added) != 0 {
		t.Fatalf("repo must not be called for invalid record")
	}

	// email lowercased on the way in
	_, err = svc.Add(context.Background(), models.TPORecord{
		Name: "A", College: "C1", Email: "  A@C1.EDU ", ContactNo: "111",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.added[0].Email != "a@c1.edu" {
		t.Fatalf("email not normalized: %q", repo.added[0].Email)
	}
}

func TestTPOService_Update_RejectsBadEmail(t *testing.T) {
	svc := NewTPOService(&mockTPORepo{})

	err := svc.Update(context.Background(), models.TPORecord{
		ID: 1, Name: "A", College: "C1", Email: "not-an-email", ContactNo: "111",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
