package domain

import "time"

// Location is a physical site containing one or more Spaces.
// Locations are never hard-deleted, only deactivated.
type Location struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	City        string    `json:"city" validate:"required"`
	Address     string    `json:"address"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Spaces []Space `json:"spaces,omitempty"`
}
