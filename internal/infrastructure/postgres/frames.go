package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/swinglens/swinglens-api/internal/domain"
)

// FrameRepo provides typed Postgres operations for the frames table.
// Frames are written by the analysis pipeline; the API only reads them.
type FrameRepo struct {
	db *sql.DB
}

func NewFrameRepo(db *sql.DB) *FrameRepo {
	return &FrameRepo{db: db}
}

const frameColumns = `id, video_id, swing_phase, frame_number, s3_key_raw, s3_key_overlay, s3_key_skeleton, keypoints_json, joint_angles_json, is_reference, created_at`

func scanFrame(row interface{ Scan(...interface{}) error }) (*domain.Frame, error) {
	var f domain.Frame
	err := row.Scan(&f.ID, &f.VideoID, &f.SwingPhase, &f.FrameNumber,
		&f.S3KeyRaw, &f.S3KeyOverlay, &f.S3KeySkeleton,
		nullJSON(&f.KeypointsJSON), nullJSON(&f.JointAnglesJSON), &f.IsReference, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FrameRepo) Get(ctx context.Context, frameID string) (*domain.Frame, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+frameColumns+` FROM frames WHERE id = $1`, frameID)
	f, err := scanFrame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *FrameRepo) ListByVideo(ctx context.Context, videoID string) ([]domain.Frame, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+frameColumns+` FROM frames WHERE video_id = $1 ORDER BY frame_number`, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var frames []domain.Frame
	for rows.Next() {
		f, err := scanFrame(rows)
		if err != nil {
			return nil, err
		}
		frames = append(frames, *f)
	}
	return frames, rows.Err()
}
