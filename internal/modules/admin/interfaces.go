package admin

import (
	"context"
	"time"

	"coworkspace/internal/domain"
	"coworkspace/internal/repository"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
}

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetAllDetails(ctx context.Context) ([]repository.BookingDetails, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	PaidRevenue(ctx context.Context) (float64, error)
}

type PaymentRepository interface {
	GetAllDetails(ctx context.Context) ([]repository.PaymentDetails, error)
}

type LocationCounter interface {
	Count(ctx context.Context) (int64, error)
}

type SpaceCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Refunder is implemented by the payment service. Keeping refunds behind
// it means the gateway call and the paired row updates stay in one place.
type Refunder interface {
	Refund(ctx context.Context, paymentID int64) (*domain.Payment, error)
}

type AuditLog interface {
	Log(ctx context.Context, entry *domain.StatusChange) error
	GetByEntity(ctx context.Context, entity string, entityID int64) ([]domain.StatusChange, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, email, role string) (string, error)
}
