package catalog

import "coworkspace/internal/domain"

// FilterAll is the sentinel meaning "no constraint" for city and type.
const FilterAll = "all"

// FilterSpaces applies the catalog criteria to an in-memory set of spaces.
// Pure function: the result is always a subset of the input, every element
// satisfies all active predicates, and the price bounds are inclusive.
func FilterSpaces(spaces []domain.Space, f SpaceFilters) []domain.Space {
	out := make([]domain.Space, 0, len(spaces))
	for _, s := range spaces {
		if !matches(s, f) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matches(s domain.Space, f SpaceFilters) bool {
	if f.City != "" && f.City != FilterAll {
		if s.Location == nil || s.Location.City != f.City {
			return false
		}
	}
	if f.Type != "" && f.Type != FilterAll {
		if string(s.Type) != f.Type {
			return false
		}
	}
	if s.PricePerMonth < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && s.PricePerMonth > f.MaxPrice {
		return false
	}
	return true
}

// ToSpaceCards maps filtered spaces into the card shape the catalog renders.
func ToSpaceCards(spaces []domain.Space) []SpaceCard {
	out := make([]SpaceCard, 0, len(spaces))
	for _, s := range spaces {
		card := SpaceCard{
			ID:            s.ID,
			Name:          s.Name,
			Type:          string(s.Type),
			Capacity:      s.Capacity,
			PricePerMonth: s.PricePerMonth,
			Amenities:     s.Amenities,
			ImageURL:      s.ImageURL,
			Description:   s.Description,
		}
		if s.Location != nil {
			card.Location = SpaceCardLocation{
				ID:   s.Location.ID,
				Name: s.Location.Name,
				City: s.Location.City,
			}
		}
		out = append(out, card)
	}
	return out
}
