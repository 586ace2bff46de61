package domain

import "time"

// Role names carried in token claims. There is no role table: players and
// coaches live in separate tables and the role is fixed at authentication.
const (
	RolePlayer = "player"
	RoleCoach  = "coach"
)

// Coach is a staff account. Coaches are provisioned out of band (cmd/seed or
// an admin tool) and authenticate with email + password.
type Coach struct {
	ID           string    `json:"id"`
	AcademyID    *string   `json:"academy_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
