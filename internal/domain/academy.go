package domain

import "time"

type Academy struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      *string   `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}
