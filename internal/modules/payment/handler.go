package payment

import (
	"errors"
	"net/http"
	"strconv"

	"coworkspace/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the checkout endpoints. All require an
// authenticated user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	razorpay := rg.Group("/payments/razorpay")
	{
		razorpay.POST("/create-order", h.CreateOrder)
		razorpay.POST("/verify", h.Verify)
	}
	rg.GET("/bookings/:id/payment", h.GetBookingPayment)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}
	req.UserID = c.GetInt64("user_id")

	resp, err := h.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Booking not found")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Booking belongs to another user")
		case errors.Is(err, ErrBookingNotOpen):
			response.Error(c, http.StatusConflict, "BOOKING_NOT_PAYABLE", "Booking is not awaiting payment")
		case errors.Is(err, ErrAmountMismatch):
			response.Error(c, http.StatusBadRequest, "AMOUNT_MISMATCH", "Amount does not match the booking total")
		case errors.Is(err, ErrGateway):
			response.Error(c, http.StatusBadGateway, response.CodeGateway, "Payment gateway is unavailable")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to create payment order")
		}
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Invalid request body", err.Error())
		return
	}
	req.UserID = c.GetInt64("user_id")

	resp, err := h.service.Verify(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Payment not found for this order")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Booking belongs to another user")
		case errors.Is(err, ErrInvalidSignature):
			response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Payment signature verification failed")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to verify payment")
		}
		return
	}

	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) GetBookingPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	p, err := h.service.GetByBooking(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "No payment for this booking")
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, response.CodeForbidden, "Booking belongs to another user")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to load payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": p})
}
