package domain

import (
	"encoding/json"
	"time"
)

// Comparison scores a frame against a reference frame of the same swing phase.
type Comparison struct {
	ID                  string          `json:"id"`
	FrameID             string          `json:"frame_id"`
	ReferenceFrameID    *string         `json:"reference_frame_id"`
	DeviationScoresJSON json.RawMessage `json:"deviation_scores_json"`
	OverallScore        *float64        `json:"overall_score"`
	AIFeedbackText      *string         `json:"ai_feedback_text"`
	CoachFeedbackText   *string         `json:"coach_feedback_text"`
	CoachApproved       *bool           `json:"coach_approved"`
	CreatedAt           time.Time       `json:"created_at"`
}
