package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Selam-Hotels/service-reservation/internal/application"
	"github.com/Selam-Hotels/service-reservation/pkg/auth"
	"github.com/Selam-Hotels/service-reservation/pkg/middleware"
	"github.com/Selam-Hotels/service-reservation/pkg/response"
)

// PaymentHandler handles HTTP requests for settlement operations.
type PaymentHandler struct {
	service *application.SettlementService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service *application.SettlementService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers all payment routes on the given router group.
func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.PaymentRoles()...))
	{
		payments.POST("", h.RecordPayment)
		payments.GET("/:id", h.GetPayment)
		payments.GET("/booking/:bookingId", h.GetPaymentByBooking)
		payments.GET("/booking/:bookingId/default-amount", h.DefaultAmount)
	}
}

// RecordPayment handles POST /api/v1/payments
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req application.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	dto, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto)
}

// GetPayment handles GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid payment ID")
		return
	}

	dto, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// GetPaymentByBooking handles GET /api/v1/payments/booking/:bookingId
func (h *PaymentHandler) GetPaymentByBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	dto, err := h.service.GetByBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto)
}

// DefaultAmount handles GET /api/v1/payments/booking/:bookingId/default-amount.
// It returns the suggested charge: nights times the nightly rate.
func (h *PaymentHandler) DefaultAmount(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingId"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	amount, err := h.service.DefaultAmount(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"booking_id": bookingID, "amount_cents": amount})
}
