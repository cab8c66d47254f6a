package catalog

// SpaceFilters are the catalog filter criteria. City and Type accept the
// sentinel "all"; the price range is inclusive at both bounds.
type SpaceFilters struct {
	City     string
	Type     string
	MinPrice float64
	MaxPrice float64
}

// SpaceCard is the display shape the catalog maps filtered spaces into.
type SpaceCard struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	Capacity      int      `json:"capacity"`
	PricePerMonth float64  `json:"price_per_month"`
	Amenities     []string `json:"amenities,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	Description   string   `json:"description,omitempty"`

	Location SpaceCardLocation `json:"location"`
}

type SpaceCardLocation struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required"`
	City        string `json:"city" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	Address     *string `json:"address,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CreateSpaceRequest struct {
	LocationID    int64    `json:"location_id" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Capacity      int      `json:"capacity" binding:"required,gt=0"`
	PricePerMonth float64  `json:"price_per_month" binding:"required,gte=0"`
	Amenities     []string `json:"amenities"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
}

type UpdateSpaceRequest struct {
	Name          *string   `json:"name,omitempty"`
	Type          *string   `json:"type,omitempty"`
	Capacity      *int      `json:"capacity,omitempty"`
	PricePerMonth *float64  `json:"price_per_month,omitempty"`
	Amenities     *[]string `json:"amenities,omitempty"`
	Description   *string   `json:"description,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	IsActive      *bool     `json:"is_active,omitempty"`
}
