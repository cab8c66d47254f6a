package catalog

import (
	"context"

	"coworkspace/internal/domain"
)

type LocationRepository interface {
	Create(ctx context.Context, l *domain.Location) error
	Update(ctx context.Context, l *domain.Location) error
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	GetAll(ctx context.Context, activeOnly bool) ([]domain.Location, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

type SpaceRepository interface {
	Create(ctx context.Context, s *domain.Space) error
	Update(ctx context.Context, s *domain.Space) error
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.Space, error)
	GetAllActive(ctx context.Context) ([]domain.Space, error)
	GetAll(ctx context.Context) ([]domain.Space, error)
	SetActive(ctx context.Context, id int64, active bool) error
}
