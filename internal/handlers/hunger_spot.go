package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/foodbridge/donation-api/internal/dto"
	apierrors "github.com/foodbridge/donation-api/internal/errors"
	"github.com/foodbridge/donation-api/internal/middleware"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/gin-gonic/gin"
)

// HungerSpotHandler handles hunger spot HTTP requests
type HungerSpotHandler struct {
	spotService *services.HungerSpotService
}

// NewHungerSpotHandler creates a new HungerSpotHandler
func NewHungerSpotHandler(spotService *services.HungerSpotService) *HungerSpotHandler {
	return &HungerSpotHandler{
		spotService: spotService,
	}
}

// ReportHungerSpotRequest represents the request body for reporting a spot
type ReportHungerSpotRequest struct {
	Description  string   `json:"description" binding:"required,max=2000"`
	LocationText string   `json:"locationText" binding:"required,max=500"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
}

// ApproveHungerSpotRequest optionally assigns a volunteer on approval
type ApproveHungerSpotRequest struct {
	VolunteerID *uint64 `json:"volunteerId"`
}

// Report handles POST /hunger-spots
func (h *HungerSpotHandler) Report(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	h.create(c, &userID)
}

// Create handles POST /admin/hunger-spots. Admin-created spots have no reporter.
func (h *HungerSpotHandler) Create(c *gin.Context) {
	h.create(c, nil)
}

func (h *HungerSpotHandler) create(c *gin.Context, reporterID *uint64) {
	var req ReportHungerSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	spot, err := h.spotService.Report(c.Request.Context(), services.ReportHungerSpotInput{
		ReporterID:   reporterID,
		Description:  req.Description,
		LocationText: req.LocationText,
		Latitude:     req.Lat,
		Longitude:    req.Lng,
	})
	if err != nil {
		var logID interface{} = "admin"
		if reporterID != nil {
			logID = *reporterID
		}
		respondServiceError(c, "report hunger spot", logID, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToHungerSpotDTO(*spot))
}

// ListPublic handles GET /hunger-spots. Without a status filter only approved
// spots are listed.
func (h *HungerSpotHandler) ListPublic(c *gin.Context) {
	status := models.HungerSpotStatus(c.DefaultQuery("status", string(models.HungerSpotStatusApproved)))
	h.list(c, &status)
}

// List handles GET /admin/hunger-spots
func (h *HungerSpotHandler) List(c *gin.Context) {
	var status *models.HungerSpotStatus
	if s := c.Query("status"); s != "" {
		filter := models.HungerSpotStatus(s)
		status = &filter
	}
	h.list(c, status)
}

func (h *HungerSpotHandler) list(c *gin.Context, status *models.HungerSpotStatus) {
	spots, err := h.spotService.List(c.Request.Context(), status)
	if err != nil {
		respondServiceError(c, "list hunger spots", c.Query("status"), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"hungerSpots": dto.ToHungerSpotDTOs(spots)})
}

// Approve handles PATCH /admin/hunger-spots/:id/approve
func (h *HungerSpotHandler) Approve(c *gin.Context) {
	spotID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid hunger spot ID")
		return
	}

	var req ApproveHungerSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	spot, err := h.spotService.Approve(c.Request.Context(), spotID, req.VolunteerID)
	if err != nil {
		respondServiceError(c, "approve hunger spot", spotID, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHungerSpotDTO(*spot))
}

// Reject handles PATCH /admin/hunger-spots/:id/reject
func (h *HungerSpotHandler) Reject(c *gin.Context) {
	h.moderate(c, "reject hunger spot", h.spotService.Reject)
}

// Resolve handles PATCH /admin/hunger-spots/:id/resolve
func (h *HungerSpotHandler) Resolve(c *gin.Context) {
	h.moderate(c, "resolve hunger spot", h.spotService.Resolve)
}

func (h *HungerSpotHandler) moderate(c *gin.Context, op string, apply func(context.Context, uint64) (*models.HungerSpot, error)) {
	spotID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid hunger spot ID")
		return
	}

	spot, err := apply(c.Request.Context(), spotID)
	if err != nil {
		respondServiceError(c, op, spotID, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToHungerSpotDTO(*spot))
}
