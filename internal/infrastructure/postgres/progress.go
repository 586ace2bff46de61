package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// ProgressRepo provides typed Postgres operations for the progress_snapshots table.
type ProgressRepo struct {
	db *sql.DB
}

func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

const progressColumns = `id, player_id, snapshot_date, angles_avg_json, consistency_score, total_swings, coach_notes, created_at`

func (r *ProgressRepo) Create(ctx context.Context, s *domain.ProgressSnapshot) error {
	s.ID = uuid.NewString()
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO progress_snapshots (id, player_id, snapshot_date, angles_avg_json, consistency_score, total_swings, coach_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+progressColumns,
		s.ID, s.PlayerID, s.SnapshotDate, nullJSON(&s.AnglesAvgJSON), s.ConsistencyScore, s.TotalSwings, s.CoachNotes).
		Scan(&s.ID, &s.PlayerID, &s.SnapshotDate, nullJSON(&s.AnglesAvgJSON),
			&s.ConsistencyScore, &s.TotalSwings, &s.CoachNotes, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert progress snapshot: %w", err)
	}
	return nil
}

func (r *ProgressRepo) ListByPlayer(ctx context.Context, playerID string) ([]domain.ProgressSnapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+progressColumns+` FROM progress_snapshots WHERE player_id = $1 ORDER BY snapshot_date DESC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []domain.ProgressSnapshot
	for rows.Next() {
		var s domain.ProgressSnapshot
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.SnapshotDate, nullJSON(&s.AnglesAvgJSON),
			&s.ConsistencyScore, &s.TotalSwings, &s.CoachNotes, &s.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}
