package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Selam-Hotels/service-reservation/internal/application"
	"github.com/Selam-Hotels/service-reservation/pkg/auth"
	"github.com/Selam-Hotels/service-reservation/pkg/middleware"
	"github.com/Selam-Hotels/service-reservation/pkg/response"
)

// AdminHandler exposes back-office payment listings and statistics.
type AdminHandler struct {
	settlement *application.SettlementService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(settlement *application.SettlementService) *AdminHandler {
	return &AdminHandler{settlement: settlement}
}

// RegisterRoutes registers all admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/payments", h.ListPayments)
		admin.GET("/payments/stats", h.PaymentStats)
	}
}

// ListPayments handles GET /api/v1/admin/payments
func (h *AdminHandler) ListPayments(c *gin.Context) {
	page, limit := pagination(c)

	dtos, total, err := h.settlement.ListAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dtos, total, page, limit)
}

// PaymentStats handles GET /api/v1/admin/payments/stats
func (h *AdminHandler) PaymentStats(c *gin.Context) {
	stats, err := h.settlement.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
