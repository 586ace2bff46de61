package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// VideoRepo provides typed Postgres operations for the videos table.
type VideoRepo struct {
	db *sql.DB
}

func NewVideoRepo(db *sql.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

const videoColumns = `id, player_id, s3_key, camera_angle, club_type, status, duration_ms, fps, error_message, uploaded_at, processed_at`

func scanVideo(row interface{ Scan(...interface{}) error }) (*domain.Video, error) {
	var v domain.Video
	err := row.Scan(&v.ID, &v.PlayerID, &v.S3Key, &v.CameraAngle, &v.ClubType,
		&v.Status, &v.DurationMs, &v.FPS, &v.ErrorMessage, &v.UploadedAt, &v.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepo) Create(ctx context.Context, v *domain.Video) error {
	v.ID = uuid.NewString()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO videos (id, player_id, s3_key, camera_angle, club_type, status)
		VALUES ($1, $2, $3, $4, $5, COALESCE(NULLIF($6, ''), 'uploading'))
		RETURNING `+videoColumns,
		v.ID, v.PlayerID, v.S3Key, v.CameraAngle, v.ClubType, v.Status)
	created, err := scanVideo(row)
	if err != nil {
		return fmt.Errorf("insert video: %w", err)
	}
	*v = *created
	return nil
}

func (r *VideoRepo) Get(ctx context.Context, videoID string) (*domain.Video, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = $1`, videoID)
	v, err := scanVideo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *VideoRepo) ListByPlayer(ctx context.Context, playerID string) ([]domain.Video, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE player_id = $1 ORDER BY uploaded_at DESC`, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []domain.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	return videos, rows.Err()
}

// UpdateStatus moves a video through the processing state machine. The
// processed_at timestamp is stamped when the video reaches a terminal state.
func (r *VideoRepo) UpdateStatus(ctx context.Context, videoID, status string, errorMessage *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE videos SET
			status = $2,
			error_message = $3,
			processed_at = CASE WHEN $2 IN ('ready', 'failed') THEN NOW() ELSE processed_at END
		WHERE id = $1`,
		videoID, status, errorMessage)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
