package catalog

import (
	"context"
	"sort"

	"coworkspace/internal/domain"
)

type Service struct {
	locations LocationRepository
	spaces    SpaceRepository
}

func NewService(locations LocationRepository, spaces SpaceRepository) *Service {
	return &Service{locations: locations, spaces: spaces}
}

/* ---------- PUBLIC CATALOG ---------- */

// ListSpaces loads the active catalog and applies the filters in memory.
func (s *Service) ListSpaces(ctx context.Context, f SpaceFilters) ([]SpaceCard, error) {
	spaces, err := s.spaces.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	// a deactivated location takes its spaces off the catalog
	visible := make([]domain.Space, 0, len(spaces))
	for _, sp := range spaces {
		if sp.Location != nil && !sp.Location.IsActive {
			continue
		}
		visible = append(visible, sp)
	}

	return ToSpaceCards(FilterSpaces(visible, f)), nil
}

func (s *Service) GetSpace(ctx context.Context, id int64) (*domain.Space, error) {
	return s.spaces.GetActiveByID(ctx, id)
}

func (s *Service) ListLocations(ctx context.Context, activeOnly bool) ([]domain.Location, error) {
	return s.locations.GetAll(ctx, activeOnly)
}

// Cities returns the distinct cities of active locations, sorted, for the
// catalog's city filter dropdown.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	locs, err := s.locations.GetAll(ctx, true)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(locs))
	cities := make([]string, 0, len(locs))
	for _, l := range locs {
		if !seen[l.City] {
			seen[l.City] = true
			cities = append(cities, l.City)
		}
	}
	sort.Strings(cities)
	return cities, nil
}

/* ---------- ADMIN: LOCATIONS ---------- */

func (s *Service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*domain.Location, error) {
	loc := &domain.Location{
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if err := s.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *Service) UpdateLocation(ctx context.Context, id int64, req UpdateLocationRequest) (*domain.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		loc.Name = *req.Name
	}
	if req.City != nil {
		loc.City = *req.City
	}
	if req.Address != nil {
		loc.Address = *req.Address
	}
	if req.Description != nil {
		loc.Description = *req.Description
	}
	if req.ImageURL != nil {
		loc.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}

	if err := s.locations.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// DeactivateLocation soft-deletes: the row stays for historical bookings.
func (s *Service) DeactivateLocation(ctx context.Context, id int64) error {
	return s.locations.SetActive(ctx, id, false)
}

/* ---------- ADMIN: SPACES ---------- */

func (s *Service) ListAllSpaces(ctx context.Context) ([]domain.Space, error) {
	return s.spaces.GetAll(ctx)
}

func (s *Service) CreateSpace(ctx context.Context, req CreateSpaceRequest) (*domain.Space, error) {
	spaceType, err := domain.ParseSpaceType(req.Type)
	if err != nil {
		return nil, ErrInvalidSpaceType
	}

	// new spaces can only be attached to an active location
	loc, err := s.locations.GetByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !loc.IsActive {
		return nil, ErrLocationInactive
	}

	space := &domain.Space{
		LocationID:    req.LocationID,
		Name:          req.Name,
		Type:          spaceType,
		Capacity:      req.Capacity,
		PricePerMonth: req.PricePerMonth,
		Amenities:     req.Amenities,
		Description:   req.Description,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}
	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *Service) UpdateSpace(ctx context.Context, id int64, req UpdateSpaceRequest) (*domain.Space, error) {
	space, err := s.spaces.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		space.Name = *req.Name
	}
	if req.Type != nil {
		spaceType, err := domain.ParseSpaceType(*req.Type)
		if err != nil {
			return nil, ErrInvalidSpaceType
		}
		space.Type = spaceType
	}
	if req.Capacity != nil && *req.Capacity > 0 {
		space.Capacity = *req.Capacity
	}
	if req.PricePerMonth != nil && *req.PricePerMonth >= 0 {
		space.PricePerMonth = *req.PricePerMonth
	}
	if req.Amenities != nil {
		space.Amenities = *req.Amenities
	}
	if req.Description != nil {
		space.Description = *req.Description
	}
	if req.ImageURL != nil {
		space.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		space.IsActive = *req.IsActive
	}

	space.Location = nil
	if err := s.spaces.Update(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *Service) DeactivateSpace(ctx context.Context, id int64) error {
	return s.spaces.SetActive(ctx, id, false)
}
