package handlers

import (
	"net/http"

	"github.com/foodbridge/donation-api/internal/constants"
	"github.com/foodbridge/donation-api/internal/dto"
	apierrors "github.com/foodbridge/donation-api/internal/errors"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/foodbridge/donation-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// FundHandler handles fundraising HTTP requests
type FundHandler struct {
	fundService *services.FundService
}

// NewFundHandler creates a new FundHandler
func NewFundHandler(fundService *services.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// ConfirmFundRequest represents the client-side payment confirmation
type ConfirmFundRequest struct {
	Amount    *float64 `json:"amount" binding:"required"`
	PaymentID string   `json:"paymentId" binding:"required,max=100"`
	DonorName string   `json:"donorName" binding:"max=255"`
	Message   string   `json:"message" binding:"max=2000"`
}

// CreateOrder handles POST /funds/order
func (h *FundHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	order, err := h.fundService.CreateOrder(c.Request.Context(), *req.Amount)
	if err != nil {
		respondServiceError(c, "create order", *req.Amount, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderDTO(*order))
}

// Webhook handles POST /funds/webhook. The signature covers the raw body, so
// it is read before any decoding.
func (h *FundHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader(constants.SignatureHeader)
	if signature == "" {
		signature = c.GetHeader(constants.RazorpaySignatureHeader)
	}

	result, err := h.fundService.HandleWebhook(c.Request.Context(), body, signature)
	if err != nil {
		respondServiceError(c, "handle webhook", c.GetHeader("X-Razorpay-Event-Id"), err)
		return
	}

	response := gin.H{"status": "ok", "event": result.Event}
	if result.Fund != nil {
		response["fund"] = dto.ToFundDTO(*result.Fund)
		response["created"] = result.Created
	}
	c.JSON(http.StatusOK, response)
}

// Confirm handles POST /funds/confirm
func (h *FundHandler) Confirm(c *gin.Context) {
	var req ConfirmFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	fund, created, err := h.fundService.ConfirmFromClient(c.Request.Context(), services.ConfirmFundInput{
		Amount:    *req.Amount,
		PaymentID: req.PaymentID,
		DonorName: req.DonorName,
		Message:   req.Message,
	})
	if err != nil {
		respondServiceError(c, "confirm fund", req.PaymentID, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToFundDTO(*fund))
}

// List handles GET /funds
func (h *FundHandler) List(c *gin.Context) {
	funds, err := h.fundService.List(c.Request.Context(), utils.ParseLimit(c))
	if err != nil {
		respondServiceError(c, "list funds", nil, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"funds": dto.ToFundDTOs(funds)})
}

// Total handles GET /funds/total
func (h *FundHandler) Total(c *gin.Context) {
	total, err := h.fundService.Total(c.Request.Context())
	if err != nil {
		respondServiceError(c, "fund total", nil, err)
		return
	}

	c.JSON(http.StatusOK, dto.FundTotalDTO{
		Total:    total,
		Currency: h.fundService.Currency(),
	})
}
