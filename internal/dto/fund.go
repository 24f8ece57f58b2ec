package dto

import (
	"time"

	"github.com/foodbridge/donation-api/internal/constants"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/payment"
)

// FundDTO represents a fund in API responses. Amount is in major units.
type FundDTO struct {
	ID        uint64            `json:"id"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency"`
	DonorName *string           `json:"donorName"`
	Message   *string           `json:"message"`
	PaymentID string            `json:"paymentId"`
	Source    models.FundSource `json:"source"`
	CreatedAt time.Time         `json:"createdAt"`
}

// OrderDTO is the checkout handle for a gateway order. Amount stays in minor
// units because that is what the checkout widget expects.
type OrderDTO struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	KeyID    string `json:"keyId"`
}

// FundTotalDTO is the running fundraising total in major units
type FundTotalDTO struct {
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// ToFundDTO converts a Fund model to FundDTO
func ToFundDTO(fund models.Fund) FundDTO {
	return FundDTO{
		ID:        fund.ID,
		Amount:    float64(fund.Amount) / constants.MinorUnitsPerMajor,
		Currency:  fund.Currency,
		DonorName: fund.DonorName,
		Message:   fund.Message,
		PaymentID: fund.PaymentID,
		Source:    fund.Source,
		CreatedAt: fund.CreatedAt,
	}
}

// ToFundDTOs converts a slice of funds
func ToFundDTOs(funds []models.Fund) []FundDTO {
	dtos := make([]FundDTO, len(funds))
	for i, fund := range funds {
		dtos[i] = ToFundDTO(fund)
	}
	return dtos
}

// ToOrderDTO converts a gateway order
func ToOrderDTO(order payment.Order) OrderDTO {
	return OrderDTO{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   order.Status,
		KeyID:    order.KeyID,
	}
}
