package handlers

import (
	"context"
	"net/http"

	"github.com/foodbridge/donation-api/internal/dto"
	apierrors "github.com/foodbridge/donation-api/internal/errors"
	"github.com/foodbridge/donation-api/internal/middleware"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/gin-gonic/gin"
)

// DonationHandler handles donation HTTP requests
type DonationHandler struct {
	donationService *services.DonationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{
		donationService: donationService,
	}
}

// SubmitDonationRequest represents the request body for submitting a donation
type SubmitDonationRequest struct {
	ProductName    string                `json:"productName" binding:"required,max=255"`
	Servings       *int                  `json:"servings" binding:"required"`
	Location       string                `json:"location" binding:"max=1000"`
	DeliveryOption models.DeliveryOption `json:"deliveryOption"`
}

// Submit handles POST /donations
func (h *DonationHandler) Submit(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	var req SubmitDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	donation, err := h.donationService.Submit(c.Request.Context(), services.SubmitDonationInput{
		DonorID:        userID,
		ProductName:    req.ProductName,
		Servings:       *req.Servings,
		Location:       req.Location,
		DeliveryOption: req.DeliveryOption,
	})
	if err != nil {
		respondServiceError(c, "submit donation", userID, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDonationDTO(*donation))
}

// ListMine handles GET /donations/mine
func (h *DonationHandler) ListMine(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	donations, err := h.donationService.ListByDonor(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "list donor donations", userID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": dto.ToDonationDTOs(donations)})
}

// ListPending handles GET /donations/pending
func (h *DonationHandler) ListPending(c *gin.Context) {
	donations, err := h.donationService.ListPending(c.Request.Context())
	if err != nil {
		respondServiceError(c, "list pending donations", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": dto.ToDonationDTOs(donations)})
}

// ListAccepted handles GET /donations/accepted
func (h *DonationHandler) ListAccepted(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	donations, err := h.donationService.ListAccepted(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, "list accepted donations", userID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donations": dto.ToDonationDTOs(donations)})
}

// Accept handles PATCH /donations/:id/accept
func (h *DonationHandler) Accept(c *gin.Context) {
	h.transition(c, "accept donation", h.donationService.Accept)
}

// Resolve handles PATCH /donations/:id/resolve
func (h *DonationHandler) Resolve(c *gin.Context) {
	h.transition(c, "resolve donation", h.donationService.Resolve)
}

func (h *DonationHandler) transition(c *gin.Context, op string, apply func(ctx context.Context, donationID, volunteerID uint64) (*models.Donation, error)) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	donationID, ok := middleware.GetIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid donation ID")
		return
	}

	donation, err := apply(c.Request.Context(), donationID, userID)
	if err != nil {
		respondServiceError(c, op, donationID, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDonationDTO(*donation))
}
