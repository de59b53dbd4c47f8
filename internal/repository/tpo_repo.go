package repository

import (
	"context"
	"database/sql"
	"fmt"

	"tpo_system/internal/models"
)

type TPORepository struct {
	db *sql.DB
}

func NewTPORepository(db *sql.DB) *TPORepository {
	return &TPORepository{db: db}
}

var _ TPORecords = (*TPORepository)(nil)

const (
	selectTPOsSQL = `SELECT id, name, college, email, contact_no FROM tpo_details ORDER BY id`
	insertTPOSQL  = `INSERT INTO tpo_details (name, college, email, contact_no) VALUES (?, ?, ?, ?)`
	updateTPOSQL  = `UPDATE tpo_details SET name = ?, college = ?, email = ?, contact_no = ? WHERE id = ?`
	deleteTPOSQL  = `DELETE FROM tpo_details WHERE id = ?`
)

// List returns all TPO records ordered by ID.
func (r *TPORepository) List(ctx context.Context) ([]models.TPORecord, error) {
	rows, err := r.db.QueryContext(ctx, selectTPOsSQL)
	if err != nil {
		return nil, fmt.Errorf("%w: select tpo records: %v", ErrStorage, err)
	}
	defer rows.Close()

	var out []models.TPORecord
	for rows.Next() {
		var rec models.TPORecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.College, &rec.Email, &rec.ContactNo); err != nil {
			return nil, fmt.Errorf("%w: scan tpo record: %v", ErrStorage, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate tpo records: %v", ErrStorage, err)
	}
	return out, nil
}

// Add inserts a record and returns its ID.
// Returns ErrDuplicateEmail when the email is already present.
func (r *TPORepository) Add(ctx context.Context, rec models.TPORecord) (int, error) {
	res, err := r.db.ExecContext(ctx, insertTPOSQL, rec.Name, rec.College, rec.Email, rec.ContactNo)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("%w: insert tpo record %q: %v", ErrStorage, rec.Email, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: get last insert id for tpo record %q: %v", ErrStorage, rec.Email, err)
	}
	return int(lastID), nil
}

// Update rewrites all mutable fields of an existing record.
// Returns ErrNotFound for an unknown ID and ErrDuplicateEmail when the new
// email collides with another record.
func (r *TPORepository) Update(ctx context.Context, rec models.TPORecord) error {
	res, err := r.db.ExecContext(ctx, updateTPOSQL, rec.Name, rec.College, rec.Email, rec.ContactNo, rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("%w: update tpo record id=%d: %v", ErrStorage, rec.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for tpo record id=%d: %v", ErrStorage, rec.ID, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a record. Returns ErrNotFound for an unknown ID.
func (r *TPORepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteTPOSQL, id)
	if err != nil {
		return fmt.Errorf("%w: delete tpo record id=%d: %v", ErrStorage, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected for tpo record id=%d: %v", ErrStorage, id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
