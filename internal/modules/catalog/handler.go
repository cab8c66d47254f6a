package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the public catalog routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/locations", h.GetLocations)
	rg.GET("/cities", h.GetCities)

	spaces := rg.Group("/spaces")
	{
		spaces.GET("", h.GetSpaces)
		spaces.GET("/:id", h.GetSpaceByID)
	}

	rg.GET("/space-types", h.GetSpaceTypes)
}

// RegisterAdminRoutes registers the back-office catalog CRUD.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/locations", h.AdminGetLocations)
	rg.POST("/locations", h.CreateLocation)
	rg.PUT("/locations/:id", h.UpdateLocation)
	rg.DELETE("/locations/:id", h.DeleteLocation)

	rg.GET("/spaces", h.AdminGetSpaces)
	rg.POST("/spaces", h.CreateSpace)
	rg.PUT("/spaces/:id", h.UpdateSpace)
	rg.DELETE("/spaces/:id", h.DeleteSpace)
}

/* ---------- PUBLIC ---------- */

// GetSpaces handles GET /api/v1/spaces?city=...&type=...&min_price=...&max_price=...
func (h *Handler) GetSpaces(c *gin.Context) {
	f := SpaceFilters{
		City: c.DefaultQuery("city", FilterAll),
		Type: c.DefaultQuery("type", FilterAll),
	}

	if minPrice := c.Query("min_price"); minPrice != "" {
		if val, err := strconv.ParseFloat(minPrice, 64); err == nil {
			f.MinPrice = val
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if val, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			f.MaxPrice = val
		}
	}

	cards, err := h.service.ListSpaces(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load spaces")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"spaces": cards})
}

func (h *Handler) GetSpaceByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid space ID")
		return
	}

	space, err := h.service.GetSpace(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Space not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load space")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"space": space})
}

func (h *Handler) GetLocations(c *gin.Context) {
	locs, err := h.service.ListLocations(c.Request.Context(), true)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load locations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"locations": locs})
}

func (h *Handler) GetCities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load cities")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cities": cities})
}

func (h *Handler) GetSpaceTypes(c *gin.Context) {
	types := domain.ValidSpaceTypes()
	typeStrings := make([]string, len(types))
	for i, t := range types {
		typeStrings[i] = string(t)
	}
	response.Success(c, http.StatusOK, gin.H{"space_types": typeStrings})
}

/* ---------- ADMIN: LOCATIONS ---------- */

func (h *Handler) AdminGetLocations(c *gin.Context) {
	locs, err := h.service.ListLocations(c.Request.Context(), false)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load locations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"locations": locs})
}

func (h *Handler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	loc, err := h.service.CreateLocation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create location")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"location": loc})
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid location ID")
		return
	}

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	loc, err := h.service.UpdateLocation(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Location not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update location")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"location": loc})
}

// DeleteLocation deactivates; the row is kept for historical bookings.
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid location ID")
		return
	}

	if err := h.service.DeactivateLocation(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Location not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to deactivate location")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Location deactivated"})
}

/* ---------- ADMIN: SPACES ---------- */

func (h *Handler) AdminGetSpaces(c *gin.Context) {
	spaces, err := h.service.ListAllSpaces(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load spaces")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"spaces": spaces})
}

func (h *Handler) CreateSpace(c *gin.Context) {
	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	space, err := h.service.CreateSpace(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSpaceType):
			response.Error(c, http.StatusBadRequest, "INVALID_SPACE_TYPE",
				"Invalid space type. Must be one of: hot-desk, meeting-room, private-office")
		case errors.Is(err, ErrLocationInactive):
			response.Error(c, http.StatusBadRequest, "LOCATION_INACTIVE", "Cannot add a space to a deactivated location")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Location not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create space")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"space": space})
}

func (h *Handler) UpdateSpace(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid space ID")
		return
	}

	var req UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body", err.Error())
		return
	}

	space, err := h.service.UpdateSpace(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSpaceType):
			response.Error(c, http.StatusBadRequest, "INVALID_SPACE_TYPE",
				"Invalid space type. Must be one of: hot-desk, meeting-room, private-office")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Space not found")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update space")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"space": space})
}

func (h *Handler) DeleteSpace(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid space ID")
		return
	}

	if err := h.service.DeactivateSpace(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Space not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to deactivate space")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Space deactivated"})
}
