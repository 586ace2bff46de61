package domain

import (
	"encoding/json"
	"time"
)

// ProgressSnapshot is a periodic roll-up of a player's swing metrics,
// written by coaches or the analysis pipeline.
type ProgressSnapshot struct {
	ID               string          `json:"id"`
	PlayerID         string          `json:"player_id"`
	SnapshotDate     time.Time       `json:"snapshot_date"`
	AnglesAvgJSON    json.RawMessage `json:"angles_avg_json"`
	ConsistencyScore *float64        `json:"consistency_score"`
	TotalSwings      *int            `json:"total_swings"`
	CoachNotes       *string         `json:"coach_notes"`
	CreatedAt        time.Time       `json:"created_at"`
}

type CreateProgressSnapshotRequest struct {
	SnapshotDate     string          `json:"snapshot_date" validate:"required,datetime=2006-01-02"`
	AnglesAvgJSON    json.RawMessage `json:"angles_avg_json"`
	ConsistencyScore *float64        `json:"consistency_score" validate:"omitempty,gte=0,lte=100"`
	TotalSwings      *int            `json:"total_swings" validate:"omitempty,gte=0"`
	CoachNotes       *string         `json:"coach_notes"`
}
