package repository

import (
	"context"
	"time"

	"coworkspace/internal/domain"

	"gorm.io/gorm"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

type locationModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;size:255;not null"`
	City        string    `gorm:"column:city;size:120;not null;index"`
	Address     string    `gorm:"column:address;size:500"`
	Description *string   `gorm:"column:description;type:text"`
	ImageURL    *string   `gorm:"column:image_url;size:500"`
	IsActive    bool      `gorm:"column:is_active;default:true;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (locationModel) TableName() string { return "locations" }

func toDomainLocation(m locationModel) *domain.Location {
	var desc, image string
	if m.Description != nil {
		desc = *m.Description
	}
	if m.ImageURL != nil {
		image = *m.ImageURL
	}

	return &domain.Location{
		ID:          m.ID,
		Name:        m.Name,
		City:        m.City,
		Address:     m.Address,
		Description: desc,
		ImageURL:    image,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toLocationModel(l *domain.Location) locationModel {
	var desc, image *string
	if l.Description != "" {
		v := l.Description
		desc = &v
	}
	if l.ImageURL != "" {
		v := l.ImageURL
		image = &v
	}

	return locationModel{
		ID:          l.ID,
		Name:        l.Name,
		City:        l.City,
		Address:     l.Address,
		Description: desc,
		ImageURL:    image,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (r *LocationRepository) Create(ctx context.Context, l *domain.Location) error {
	m := toLocationModel(l)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = *toDomainLocation(m)
	return nil
}

func (r *LocationRepository) Update(ctx context.Context, l *domain.Location) error {
	m := toLocationModel(l)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = *toDomainLocation(m)
	return nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	var m locationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainLocation(m), nil
}

// GetAll returns locations ordered by name. With activeOnly the inactive
// ones are filtered out; historical joins elsewhere are unaffected.
func (r *LocationRepository) GetAll(ctx context.Context, activeOnly bool) ([]domain.Location, error) {
	var rows []locationModel
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Location, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainLocation(m))
	}
	return out, nil
}

// SetActive flips the active flag. Locations are never hard-deleted.
func (r *LocationRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&locationModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *LocationRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&locationModel{}).Count(&cnt).Error
	return cnt, err
}
