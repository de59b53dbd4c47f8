package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"tpo_system/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockTPORepo(t *testing.T) (*TPORepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewTPORepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestTPORepository_List(t *testing.T) {
	repo, mock, cleanup := newMockTPORepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "college", "email", "contact_no"}).
		AddRow(1, "A", "C1", "a@c1.edu", "111").
		AddRow(2, "B", "C2", "b@c2.edu", "222")
	mock.ExpectQuery(regexp.QuoteMeta(selectTPOsSQL)).WillReturnRows(rows)

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 || records[1].Email != "b@c2.edu" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestTPORepository_Add(t *testing.T) {
	rec := models.TPORecord{Name: "A", College: "C1", Email: "a@c1.edu", ContactNo: "111"}

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockTPORepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertTPOSQL)).
			WithArgs("A", "C1", "a@c1.edu", "111").
			WillReturnResult(sqlmock.NewResult(9, 1))

		id, err := repo.Add(context.Background(), rec)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 9 {
			t.Fatalf("id: got %d, want 9", id)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock, cleanup := newMockTPORepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertTPOSQL)).
			WithArgs("A", "C1", "a@c1.edu", "111").
			WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: tpo_details.email (2067)"))

		if _, err := repo.Add(context.Background(), rec); !errors.Is(err, ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("exec error", func(t *testing.T) {
		repo, mock, cleanup := newMockTPORepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertTPOSQL)).
			WithArgs("A", "C1", "a@c1.edu", "111").
			WillReturnError(errors.New("db down"))

		if _, err := repo.Add(context.Background(), rec); !errors.Is(err, ErrStorage) {
			t.Fatalf("expected ErrStorage, got %v", err)
		}
	})
}

func TestTPORepository_Update(t *testing.T) {
	rec := models.TPORecord{ID: 9, Name: "A", College: "C1", Email: "a@c1.edu", ContactNo: "999"}

	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockTPORepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateTPOSQL)).
			WithArgs("A", "C1", "a@c1.edu", "999", 9).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Update(context.Background(), rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, mock, cleanup := newMockTPORepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(updateTPOSQL)).
			WithArgs("A", "C1", "a@c1.edu", "999", 9).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Update(context.Background(), rec); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestTPORepository_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock, cleanup := newMockTPORepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteTPOSQL)).
			WithArgs(9).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), 9); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, mock, cleanup := newMockTPORepo(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(deleteTPOSQL)).
			WithArgs(77).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Delete(context.Background(), 77); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
