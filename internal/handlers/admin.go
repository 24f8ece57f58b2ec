package handlers

import (
	"net/http"

	"github.com/foodbridge/donation-api/internal/dto"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/foodbridge/donation-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, "list users", params.Page, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Metrics handles GET /admin/metrics
func (h *AdminHandler) Metrics(c *gin.Context) {
	metrics, err := h.adminService.Metrics(c.Request.Context())
	if err != nil {
		respondServiceError(c, "admin metrics", nil, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}
