package postgres

import (
	"context"
	"database/sql"

	"github.com/swinglens/swinglens-api/internal/domain"
)

// ComparisonRepo provides typed Postgres operations for the comparisons table.
type ComparisonRepo struct {
	db *sql.DB
}

func NewComparisonRepo(db *sql.DB) *ComparisonRepo {
	return &ComparisonRepo{db: db}
}

func (r *ComparisonRepo) ListByFrame(ctx context.Context, frameID string) ([]domain.Comparison, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, frame_id, reference_frame_id, deviation_scores_json, overall_score,
		       ai_feedback_text, coach_feedback_text, coach_approved, created_at
		FROM comparisons WHERE frame_id = $1 ORDER BY created_at DESC`, frameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comparisons []domain.Comparison
	for rows.Next() {
		var c domain.Comparison
		if err := rows.Scan(&c.ID, &c.FrameID, &c.ReferenceFrameID, nullJSON(&c.DeviationScoresJSON),
			&c.OverallScore, &c.AIFeedbackText, &c.CoachFeedbackText, &c.CoachApproved,
			&c.CreatedAt); err != nil {
			return nil, err
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, rows.Err()
}
