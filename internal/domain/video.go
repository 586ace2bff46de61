package domain

import "time"

// Video processing states. Uploads start in StatusUploading and move to
// StatusProcessing once the object is in S3; the analysis pipeline owns the
// transition to ready/failed.
const (
	VideoStatusUploading  = "uploading"
	VideoStatusProcessing = "processing"
	VideoStatusReady      = "ready"
	VideoStatusFailed     = "failed"
)

type Video struct {
	ID           string     `json:"id"`
	PlayerID     string     `json:"player_id"`
	S3Key        string     `json:"s3_key"`
	CameraAngle  *string    `json:"camera_angle"`
	ClubType     *string    `json:"club_type"`
	Status       string     `json:"status"`
	DurationMs   *int       `json:"duration_ms"`
	FPS          *int       `json:"fps"`
	ErrorMessage *string    `json:"error_message"`
	UploadedAt   time.Time  `json:"uploaded_at"`
	ProcessedAt  *time.Time `json:"processed_at"`
}
