package repository

import (
	"context"
	"encoding/json"
	"time"

	"coworkspace/internal/domain"

	"gorm.io/gorm"
)

type SpaceRepository struct {
	db *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

type spaceModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	LocationID    int64     `gorm:"column:location_id;not null;index"`
	Name          string    `gorm:"column:name;size:255;not null"`
	Type          string    `gorm:"column:type;size:40;not null;index"`
	Capacity      int       `gorm:"column:capacity;not null"`
	PricePerMonth float64   `gorm:"column:price_per_month"`
	Amenities     *string   `gorm:"column:amenities;type:text"`
	Description   *string   `gorm:"column:description;type:text"`
	ImageURL      *string   `gorm:"column:image_url;size:500"`
	IsActive      bool      `gorm:"column:is_active;default:true;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (spaceModel) TableName() string { return "spaces" }

func toDomainSpace(m spaceModel) *domain.Space {
	var desc, image string
	if m.Description != nil {
		desc = *m.Description
	}
	if m.ImageURL != nil {
		image = *m.ImageURL
	}

	var amenities []string
	if m.Amenities != nil && *m.Amenities != "" {
		// amenities are stored as a JSON array of strings
		_ = json.Unmarshal([]byte(*m.Amenities), &amenities)
	}

	return &domain.Space{
		ID:            m.ID,
		LocationID:    m.LocationID,
		Name:          m.Name,
		Type:          domain.SpaceType(m.Type),
		Capacity:      m.Capacity,
		PricePerMonth: m.PricePerMonth,
		Amenities:     amenities,
		Description:   desc,
		ImageURL:      image,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toSpaceModel(s *domain.Space) spaceModel {
	var desc, image, amenities *string
	if s.Description != "" {
		v := s.Description
		desc = &v
	}
	if s.ImageURL != "" {
		v := s.ImageURL
		image = &v
	}
	if len(s.Amenities) > 0 {
		raw, _ := json.Marshal(s.Amenities)
		v := string(raw)
		amenities = &v
	}

	return spaceModel{
		ID:            s.ID,
		LocationID:    s.LocationID,
		Name:          s.Name,
		Type:          string(s.Type),
		Capacity:      s.Capacity,
		PricePerMonth: s.PricePerMonth,
		Amenities:     amenities,
		Description:   desc,
		ImageURL:      image,
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r *SpaceRepository) Create(ctx context.Context, s *domain.Space) error {
	m := toSpaceModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSpace(m)
	return nil
}

func (r *SpaceRepository) Update(ctx context.Context, s *domain.Space) error {
	m := toSpaceModel(s)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSpace(m)
	return nil
}

func (r *SpaceRepository) GetByID(ctx context.Context, id int64) (*domain.Space, error) {
	var m spaceModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	s := toDomainSpace(m)
	if err := r.attachLocation(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetActiveByID returns a space only when both it and its location are
// active; this backs the public detail/booking path.
func (r *SpaceRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Space, error) {
	var m spaceModel
	tx := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	s := toDomainSpace(m)
	if err := r.attachLocation(ctx, s); err != nil {
		return nil, err
	}
	if s.Location != nil && !s.Location.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

// GetAllActive returns every active space with its location attached. The
// whole active catalog is loaded at once; filtering happens in memory.
func (r *SpaceRepository) GetAllActive(ctx context.Context) ([]domain.Space, error) {
	var rows []spaceModel
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.withLocations(ctx, rows)
}

// GetAll returns every space regardless of active flag (admin listing).
func (r *SpaceRepository) GetAll(ctx context.Context) ([]domain.Space, error) {
	var rows []spaceModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.withLocations(ctx, rows)
}

func (r *SpaceRepository) withLocations(ctx context.Context, rows []spaceModel) ([]domain.Space, error) {
	locIDs := make([]int64, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for _, m := range rows {
		if !seen[m.LocationID] {
			seen[m.LocationID] = true
			locIDs = append(locIDs, m.LocationID)
		}
	}

	locs := make(map[int64]*domain.Location, len(locIDs))
	if len(locIDs) > 0 {
		var locRows []locationModel
		if err := r.db.WithContext(ctx).Where("id IN ?", locIDs).Find(&locRows).Error; err != nil {
			return nil, err
		}
		for _, lm := range locRows {
			locs[lm.ID] = toDomainLocation(lm)
		}
	}

	out := make([]domain.Space, 0, len(rows))
	for _, m := range rows {
		s := toDomainSpace(m)
		s.Location = locs[m.LocationID]
		out = append(out, *s)
	}
	return out, nil
}

func (r *SpaceRepository) attachLocation(ctx context.Context, s *domain.Space) error {
	var lm locationModel
	tx := r.db.WithContext(ctx).First(&lm, s.LocationID)
	if tx.Error != nil {
		return tx.Error
	}
	s.Location = toDomainLocation(lm)
	return nil
}

func (r *SpaceRepository) SetActive(ctx context.Context, id int64, active bool) error {
	tx := r.db.WithContext(ctx).
		Model(&spaceModel{}).
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

func (r *SpaceRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&spaceModel{}).Count(&cnt).Error
	return cnt, err
}
