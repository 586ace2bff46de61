package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// FeedbackRepo provides typed Postgres operations for the feedback table.
type FeedbackRepo struct {
	db *sql.DB
}

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

const feedbackColumns = `id, video_id, player_id, coach_id, feedback_type, summary, drill_recommendations, priority_fixes, is_read, created_at`

func scanFeedback(row interface{ Scan(...interface{}) error }) (*domain.Feedback, error) {
	var f domain.Feedback
	err := row.Scan(&f.ID, &f.VideoID, &f.PlayerID, &f.CoachID, &f.FeedbackType,
		&f.Summary, nullJSON(&f.DrillRecommendations), nullJSON(&f.PriorityFixes), &f.IsRead, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	f.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO feedback (id, video_id, player_id, coach_id, feedback_type, summary, drill_recommendations, priority_fixes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+feedbackColumns,
		f.ID, f.VideoID, f.PlayerID, f.CoachID, f.FeedbackType,
		f.Summary, nullJSON(&f.DrillRecommendations), nullJSON(&f.PriorityFixes))
	created, err := scanFeedback(row)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	*f = *created
	return nil
}

func (r *FeedbackRepo) Get(ctx context.Context, feedbackID string) (*domain.Feedback, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE id = $1`, feedbackID)
	f, err := scanFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListByPlayer returns a player's feedback, unread entries first.
func (r *FeedbackRepo) ListByPlayer(ctx context.Context, playerID string) ([]domain.Feedback, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+feedbackColumns+` FROM feedback WHERE player_id = $1 ORDER BY is_read, created_at DESC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Feedback
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *f)
	}
	return entries, rows.Err()
}

func (r *FeedbackRepo) MarkAsRead(ctx context.Context, feedbackID string) (*domain.Feedback, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE feedback SET is_read = TRUE WHERE id = $1
		RETURNING `+feedbackColumns, feedbackID)
	f, err := scanFeedback(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}
