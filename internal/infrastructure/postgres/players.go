package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// PlayerRepo provides typed Postgres operations for the players table.
type PlayerRepo struct {
	db *sql.DB
}

func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{db: db}
}

const playerColumns = `id, academy_id, coach_id, name, phone, handicap, skill_level, dominant_hand, created_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(&p.ID, &p.AcademyID, &p.CoachID, &p.Name, &p.Phone,
		&p.Handicap, &p.SkillLevel, &p.DominantHand, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the player and fills in the generated id and column
// defaults. Empty skill level / dominant hand fall back to the schema
// defaults so auto-provisioned players come back fully populated.
func (r *PlayerRepo) Create(ctx context.Context, p *domain.Player) error {
	p.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO players (id, academy_id, coach_id, name, phone, handicap, skill_level, dominant_hand)
		VALUES ($1, $2, $3, $4, $5, $6,
			COALESCE(NULLIF($7, ''), 'beginner'),
			COALESCE(NULLIF($8, ''), 'right'))
		RETURNING `+playerColumns,
		p.ID, p.AcademyID, p.CoachID, p.Name, p.Phone, p.Handicap, p.SkillLevel, p.DominantHand)
	created, err := scanPlayer(row)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	*p = *created
	return nil
}

func (r *PlayerRepo) Get(ctx context.Context, playerID string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, playerID)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlayerRepo) GetByPhone(ctx context.Context, phone string) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE phone = $1`, phone)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PlayerRepo) ListByCoach(ctx context.Context, coachID string) ([]domain.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE coach_id = $1 ORDER BY name`, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

// Update applies the non-nil fields of req and returns the updated record.
func (r *PlayerRepo) Update(ctx context.Context, playerID string, req domain.UpdatePlayerRequest) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE players SET
			name          = COALESCE($2, name),
			handicap      = COALESCE($3, handicap),
			skill_level   = COALESCE($4, skill_level),
			dominant_hand = COALESCE($5, dominant_hand)
		WHERE id = $1
		RETURNING `+playerColumns,
		playerID, req.Name, req.Handicap, req.SkillLevel, req.DominantHand)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
