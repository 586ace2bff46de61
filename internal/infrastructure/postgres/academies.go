package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// AcademyRepo provides typed Postgres operations for the academies table.
type AcademyRepo struct {
	db *sql.DB
}

func NewAcademyRepo(db *sql.DB) *AcademyRepo {
	return &AcademyRepo{db: db}
}

func (r *AcademyRepo) Create(ctx context.Context, a *domain.Academy) error {
	a.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO academies (id, name, city)
		VALUES ($1, $2, $3)
		RETURNING id, name, city, created_at`,
		a.ID, a.Name, a.City).
		Scan(&a.ID, &a.Name, &a.City, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert academy: %w", err)
	}
	return nil
}

func (r *AcademyRepo) GetByName(ctx context.Context, name string) (*domain.Academy, error) {
	var a domain.Academy
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, city, created_at FROM academies WHERE name = $1`, name).
		Scan(&a.ID, &a.Name, &a.City, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
