package admin

import (
	"errors"
	"net/http"
	"strconv"

	"coworkspace/internal/modules/payment"
	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAuthRoutes registers the unauthenticated back-office login.
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterRoutes registers the admin routes. The group is expected to be
// wrapped in auth and admin-role middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.GetStats)

	bookings := rg.Group("/bookings")
	{
		bookings.GET("", h.GetBookings)
		bookings.PATCH("/:id/status", h.UpdateBookingStatus)
	}

	payments := rg.Group("/payments")
	{
		payments.GET("", h.GetPayments)
		payments.POST("/:id/refund", h.RefundPayment)
	}

	rg.GET("/audit/:entity/:id", h.GetAuditTrail)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Login failed")
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load stats")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) GetBookings(c *gin.Context) {
	f := BookingFilters{
		Query:        c.Query("q"),
		Status:       c.DefaultQuery("status", filterAll),
		PaymentState: c.DefaultQuery("payment_status", filterAll),
	}

	rows, err := h.service.ListBookings(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}

	b, err := h.service.UpdateBookingStatus(c.Request.Context(), id, c.GetInt64("user_id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS",
				"Status must be one of: pending, confirmed, cancelled, completed")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		case errors.Is(err, ErrBadTransition):
			response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status change is not allowed from the current status")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to update booking status")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) GetPayments(c *gin.Context) {
	f := PaymentFilters{
		Query:  c.Query("q"),
		Status: c.DefaultQuery("status", filterAll),
	}

	rows, totals, err := h.service.ListPayments(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load payments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payments": rows, "totals": totals})
}

func (h *Handler) RefundPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}

	p, err := h.service.RefundPayment(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Payment not found")
		case errors.Is(err, payment.ErrNotRefundable):
			response.Error(c, http.StatusConflict, "NOT_REFUNDABLE", "Only captured payments can be refunded")
		case errors.Is(err, payment.ErrGateway):
			response.Error(c, http.StatusBadGateway, response.CodeGateway, "Payment gateway is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to refund payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func (h *Handler) GetAuditTrail(c *gin.Context) {
	entity := c.Param("entity")
	if entity != "booking" && entity != "payment" {
		response.Error(c, http.StatusBadRequest, "INVALID_ENTITY", "Entity must be booking or payment")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid entity ID")
		return
	}

	entries, err := h.service.GetAuditTrail(c.Request.Context(), entity, id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load audit trail")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"changes": entries})
}
