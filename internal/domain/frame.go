package domain

import (
	"encoding/json"
	"time"
)

// Frame is a single extracted swing-phase frame of a video, with the raw
// image and optional pose overlay/skeleton renders stored in S3.
type Frame struct {
	ID              string          `json:"id"`
	VideoID         string          `json:"video_id"`
	SwingPhase      string          `json:"swing_phase"`
	FrameNumber     int             `json:"frame_number"`
	S3KeyRaw        *string         `json:"s3_key_raw"`
	S3KeyOverlay    *string         `json:"s3_key_overlay"`
	S3KeySkeleton   *string         `json:"s3_key_skeleton"`
	KeypointsJSON   json.RawMessage `json:"keypoints_json"`
	JointAnglesJSON json.RawMessage `json:"joint_angles_json"`
	IsReference     bool            `json:"is_reference"`
	CreatedAt       time.Time       `json:"created_at"`
}
