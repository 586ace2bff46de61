package domain

import "time"

// Player is an end-user account, identified by phone number. Players are
// auto-created on first successful OTP verification with an empty name.
type Player struct {
	ID           string    `json:"id"`
	AcademyID    *string   `json:"academy_id"`
	CoachID      *string   `json:"coach_id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Handicap     *float64  `json:"handicap"`
	SkillLevel   string    `json:"skill_level"`
	DominantHand string    `json:"dominant_hand"`
	CreatedAt    time.Time `json:"created_at"`
}

type UpdatePlayerRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=255"`
	Handicap     *float64 `json:"handicap" validate:"omitempty,gte=0,lte=54"`
	SkillLevel   *string  `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	DominantHand *string  `json:"dominant_hand" validate:"omitempty,oneof=left right"`
}
