package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Selam-Hotels/service-reservation/internal/application"
	"github.com/Selam-Hotels/service-reservation/pkg/auth"
	"github.com/Selam-Hotels/service-reservation/pkg/middleware"
	"github.com/Selam-Hotels/service-reservation/pkg/response"
)

// AvailabilityHandler handles HTTP requests for availability queries.
type AvailabilityHandler struct {
	service *application.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(service *application.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

// RegisterRoutes registers the availability route on the given router group.
func (h *AvailabilityHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/availability", middleware.AuthMiddleware(jwtManager), h.AvailableRooms)
}

// AvailableRooms handles GET /api/v1/availability?check_in=...&check_out=...
func (h *AvailabilityHandler) AvailableRooms(c *gin.Context) {
	checkIn, err := time.ParseInLocation(application.DateLayout, c.Query("check_in"), time.UTC)
	if err != nil {
		response.BadRequest(c, "check_in must be a date in YYYY-MM-DD format")
		return
	}
	checkOut, err := time.ParseInLocation(application.DateLayout, c.Query("check_out"), time.UTC)
	if err != nil {
		response.BadRequest(c, "check_out must be a date in YYYY-MM-DD format")
		return
	}

	dtos, err := h.service.ComputeAvailable(c.Request.Context(), checkIn, checkOut, uuid.Nil)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dtos)
}
