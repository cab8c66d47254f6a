package booking

import (
	"context"
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/repository"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUser(ctx context.Context, userID int64) ([]repository.BookingDetails, error)
	CheckAvailability(ctx context.Context, spaceID int64, start, end time.Time) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

type SpaceRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Space, error)
}
