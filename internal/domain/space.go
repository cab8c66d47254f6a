package domain

import (
	"fmt"
	"time"
)

type SpaceType string

const (
	SpaceHotDesk       SpaceType = "hot-desk"
	SpaceMeetingRoom   SpaceType = "meeting-room"
	SpacePrivateOffice SpaceType = "private-office"
)

func ValidSpaceTypes() []SpaceType {
	return []SpaceType{SpaceHotDesk, SpaceMeetingRoom, SpacePrivateOffice}
}

func ParseSpaceType(s string) (SpaceType, error) {
	switch SpaceType(s) {
	case SpaceHotDesk, SpaceMeetingRoom, SpacePrivateOffice:
		return SpaceType(s), nil
	}
	return "", fmt.Errorf("unknown space type %q", s)
}

// Space is a bookable unit belonging to exactly one Location.
type Space struct {
	ID            int64     `json:"id"`
	LocationID    int64     `json:"location_id" validate:"required"`
	Name          string    `json:"name" validate:"required"`
	Type          SpaceType `json:"type" validate:"required"`
	Capacity      int       `json:"capacity" validate:"required,gt=0"`
	PricePerMonth float64   `json:"price_per_month" validate:"required,gte=0"`
	Amenities     []string  `json:"amenities,omitempty"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Location *Location `json:"location,omitempty"`
}
