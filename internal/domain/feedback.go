package domain

import (
	"encoding/json"
	"time"
)

type Feedback struct {
	ID                   string          `json:"id"`
	VideoID              string          `json:"video_id"`
	PlayerID             string          `json:"player_id"`
	CoachID              *string         `json:"coach_id"`
	FeedbackType         string          `json:"feedback_type"`
	Summary              *string         `json:"summary"`
	DrillRecommendations json.RawMessage `json:"drill_recommendations"`
	PriorityFixes        json.RawMessage `json:"priority_fixes"`
	IsRead               bool            `json:"is_read"`
	CreatedAt            time.Time       `json:"created_at"`
}

type CreateFeedbackRequest struct {
	FeedbackType         string          `json:"feedback_type" validate:"required,max=20"`
	Summary              *string         `json:"summary"`
	DrillRecommendations json.RawMessage `json:"drill_recommendations"`
	PriorityFixes        json.RawMessage `json:"priority_fixes"`
}
