package catalog

import (
	"math/rand"
	"testing"

	"coworkspace/internal/domain"

	"github.com/stretchr/testify/assert"
)

func loc(id int64, city string) *domain.Location {
	return &domain.Location{ID: id, Name: city + " Hub", City: city, IsActive: true}
}

func fixtureSpaces() []domain.Space {
	return []domain.Space{
		{ID: 1, Name: "Flex Desk A", Type: domain.SpaceHotDesk, PricePerMonth: 8000, Location: loc(1, "Bengaluru")},
		{ID: 2, Name: "Board Room", Type: domain.SpaceMeetingRoom, PricePerMonth: 25000, Location: loc(1, "Bengaluru")},
		{ID: 3, Name: "Studio Office 3", Type: domain.SpacePrivateOffice, PricePerMonth: 45000, Location: loc(2, "Mumbai")},
		{ID: 4, Name: "Tower Desk 12", Type: domain.SpaceHotDesk, PricePerMonth: 15000, Location: loc(3, "Gurugram")},
		{ID: 5, Name: "Huddle Room", Type: domain.SpaceMeetingRoom, PricePerMonth: 12000, Location: loc(2, "Mumbai")},
	}
}

func TestFilterSpaces_NoCriteriaReturnsAll(t *testing.T) {
	in := fixtureSpaces()
	out := FilterSpaces(in, SpaceFilters{City: FilterAll, Type: FilterAll})
	assert.Len(t, out, len(in))
}

func TestFilterSpaces_ByCity(t *testing.T) {
	out := FilterSpaces(fixtureSpaces(), SpaceFilters{City: "Mumbai", Type: FilterAll})
	assert.Len(t, out, 2)
	for _, s := range out {
		assert.Equal(t, "Mumbai", s.Location.City)
	}
}

func TestFilterSpaces_ByType(t *testing.T) {
	out := FilterSpaces(fixtureSpaces(), SpaceFilters{City: FilterAll, Type: "hot-desk"})
	assert.Len(t, out, 2)
	for _, s := range out {
		assert.Equal(t, domain.SpaceHotDesk, s.Type)
	}
}

// The price range keeps spaces priced exactly at either bound.
func TestFilterSpaces_PriceBoundsInclusive(t *testing.T) {
	out := FilterSpaces(fixtureSpaces(), SpaceFilters{
		City:     FilterAll,
		Type:     FilterAll,
		MinPrice: 12000,
		MaxPrice: 25000,
	})

	ids := make([]int64, 0, len(out))
	for _, s := range out {
		ids = append(ids, s.ID)
	}
	// 12000 and 25000 are both bounds and both retained.
	assert.ElementsMatch(t, []int64{2, 4, 5}, ids)
}

func TestFilterSpaces_CombinedCriteria(t *testing.T) {
	out := FilterSpaces(fixtureSpaces(), SpaceFilters{
		City:     "Bengaluru",
		Type:     "meeting-room",
		MinPrice: 10000,
		MaxPrice: 30000,
	})
	assert.Len(t, out, 1)
	assert.Equal(t, int64(2), out[0].ID)
}

// For any random criteria the result is a subset of the input and every
// element satisfies all active predicates.
func TestFilterSpaces_SubsetProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	in := fixtureSpaces()
	cities := []string{FilterAll, "Bengaluru", "Mumbai", "Gurugram", "Pune"}
	types := []string{FilterAll, "hot-desk", "meeting-room", "private-office"}

	byID := make(map[int64]domain.Space, len(in))
	for _, s := range in {
		byID[s.ID] = s
	}

	for i := 0; i < 200; i++ {
		f := SpaceFilters{
			City:     cities[rng.Intn(len(cities))],
			Type:     types[rng.Intn(len(types))],
			MinPrice: float64(rng.Intn(6)) * 10000,
			MaxPrice: float64(rng.Intn(6)) * 10000,
		}

		out := FilterSpaces(in, f)
		assert.LessOrEqual(t, len(out), len(in))

		for _, s := range out {
			_, known := byID[s.ID]
			assert.True(t, known)

			if f.City != FilterAll {
				assert.Equal(t, f.City, s.Location.City)
			}
			if f.Type != FilterAll {
				assert.Equal(t, f.Type, string(s.Type))
			}
			assert.GreaterOrEqual(t, s.PricePerMonth, f.MinPrice)
			if f.MaxPrice > 0 {
				assert.LessOrEqual(t, s.PricePerMonth, f.MaxPrice)
			}
		}
	}
}

func TestToSpaceCards(t *testing.T) {
	cards := ToSpaceCards(fixtureSpaces()[:1])
	assert.Len(t, cards, 1)
	assert.Equal(t, "Flex Desk A", cards[0].Name)
	assert.Equal(t, "Bengaluru", cards[0].Location.City)
	assert.Equal(t, 8000.0, cards[0].PricePerMonth)
}
