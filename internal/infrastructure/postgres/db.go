package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Connect opens a pooled connection to Postgres, pings it, and creates the
// schema if it does not exist yet.
func Connect(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

func initSchema(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS academies (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(255) NOT NULL,
			city VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS coaches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			academy_id UUID REFERENCES academies(id),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS players (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			academy_id UUID REFERENCES academies(id),
			coach_id UUID REFERENCES coaches(id),
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(20) NOT NULL UNIQUE,
			handicap NUMERIC(4,1),
			skill_level VARCHAR(20) NOT NULL DEFAULT 'beginner',
			dominant_hand VARCHAR(10) NOT NULL DEFAULT 'right',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			player_id UUID NOT NULL REFERENCES players(id),
			s3_key VARCHAR(500) NOT NULL,
			camera_angle VARCHAR(20),
			club_type VARCHAR(30),
			status VARCHAR(20) NOT NULL DEFAULT 'uploading',
			duration_ms INTEGER,
			fps INTEGER,
			error_message TEXT,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			processed_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS frames (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			video_id UUID NOT NULL REFERENCES videos(id),
			swing_phase VARCHAR(30) NOT NULL,
			frame_number INTEGER NOT NULL,
			s3_key_raw VARCHAR(500),
			s3_key_overlay VARCHAR(500),
			s3_key_skeleton VARCHAR(500),
			keypoints_json JSONB,
			joint_angles_json JSONB,
			is_reference BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS comparisons (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			frame_id UUID NOT NULL REFERENCES frames(id),
			reference_frame_id UUID REFERENCES frames(id),
			deviation_scores_json JSONB,
			overall_score NUMERIC(5,2),
			ai_feedback_text TEXT,
			coach_feedback_text TEXT,
			coach_approved BOOLEAN,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS feedback (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			video_id UUID NOT NULL REFERENCES videos(id),
			player_id UUID NOT NULL REFERENCES players(id),
			coach_id UUID REFERENCES coaches(id),
			feedback_type VARCHAR(20) NOT NULL,
			summary TEXT,
			drill_recommendations JSONB,
			priority_fixes JSONB,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS progress_snapshots (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			player_id UUID NOT NULL REFERENCES players(id),
			snapshot_date DATE NOT NULL,
			angles_avg_json JSONB,
			consistency_score NUMERIC(5,2),
			total_swings INTEGER,
			coach_notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_videos_player ON videos(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_frames_video ON frames(video_id)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_player ON feedback(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_progress_player ON progress_snapshots(player_id)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}
