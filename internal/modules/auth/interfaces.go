package auth

import (
	"context"

	"coworkspace/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id int64) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, p *domain.Profile) error
}

type tokenIssuer interface {
	GenerateToken(userID int64, email, role string) (string, error)
}
