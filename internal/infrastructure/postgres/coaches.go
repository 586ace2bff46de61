package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// CoachRepo provides typed Postgres operations for the coaches table.
type CoachRepo struct {
	db *sql.DB
}

func NewCoachRepo(db *sql.DB) *CoachRepo {
	return &CoachRepo{db: db}
}

const coachColumns = `id, academy_id, name, email, password_hash, phone, is_active, created_at`

func scanCoach(row interface{ Scan(...interface{}) error }) (*domain.Coach, error) {
	var c domain.Coach
	err := row.Scan(&c.ID, &c.AcademyID, &c.Name, &c.Email, &c.PasswordHash,
		&c.Phone, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CoachRepo) Create(ctx context.Context, c *domain.Coach) error {
	c.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO coaches (id, academy_id, name, email, password_hash, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+coachColumns,
		c.ID, c.AcademyID, c.Name, c.Email, c.PasswordHash, c.Phone)
	created, err := scanCoach(row)
	if err != nil {
		return fmt.Errorf("insert coach: %w", err)
	}
	*c = *created
	return nil
}

func (r *CoachRepo) Get(ctx context.Context, coachID string) (*domain.Coach, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+coachColumns+` FROM coaches WHERE id = $1`, coachID)
	c, err := scanCoach(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CoachRepo) GetByEmail(ctx context.Context, email string) (*domain.Coach, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+coachColumns+` FROM coaches WHERE email = $1`, email)
	c, err := scanCoach(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
