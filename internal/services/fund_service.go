package services

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/foodbridge/donation-api/internal/cache"
	"github.com/foodbridge/donation-api/internal/constants"
	"github.com/foodbridge/donation-api/internal/events"
	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/payment"
	"github.com/foodbridge/donation-api/internal/repository"
	"github.com/foodbridge/donation-api/internal/utils"
)

// Minor-unit amounts above this lose integer precision as float64.
const maxAmountMinor = 1 << 53

// ToMinorUnits converts a major-unit amount (e.g. rupees) to minor units
// (paise), rounding to the nearest unit.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * constants.MinorUnitsPerMajor))
}

// ToMajorUnits converts minor units back to major units.
func ToMajorUnits(amount int64) float64 {
	return float64(amount) / constants.MinorUnitsPerMajor
}

// FundService handles payment orders and the append-only fund ledger.
type FundService struct {
	fundRepo      repository.FundRepository
	gateway       payment.Gateway
	webhookSecret string
	currency      string
	cache         cache.FundCache
	publisher     events.Publisher
}

// FundServiceConfig carries the payment settings. A nil Gateway disables
// order creation and an empty WebhookSecret disables webhooks.
type FundServiceConfig struct {
	Gateway       payment.Gateway
	WebhookSecret string
	Currency      string
}

// NewFundService creates a new FundService
func NewFundService(fundRepo repository.FundRepository, cfg FundServiceConfig, fundCache cache.FundCache, publisher events.Publisher) *FundService {
	return &FundService{
		fundRepo:      fundRepo,
		gateway:       cfg.Gateway,
		webhookSecret: cfg.WebhookSecret,
		currency:      cfg.Currency,
		cache:         fundCache,
		publisher:     publisher,
	}
}

func validAmount(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	minor := ToMinorUnits(amount)
	if minor < 1 || minor > maxAmountMinor {
		return 0, ErrInvalidAmount
	}
	return minor, nil
}

// CreateOrder asks the gateway for an order of amount major units. Nothing is
// recorded until the payment is confirmed.
func (s *FundService) CreateOrder(ctx context.Context, amount float64) (*payment.Order, error) {
	if s.gateway == nil {
		return nil, ErrGatewayNotConfigured
	}
	minor, err := validAmount(amount)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   minor,
		Currency: s.currency,
		Receipt:  utils.GenerateReceipt(),
	})
	if err != nil {
		return nil, upstreamError("create order", err)
	}
	return order, nil
}

// WebhookResult describes what a webhook delivery did. Fund is nil when the
// event was not a captured payment.
type WebhookResult struct {
	Event   string
	Fund    *models.Fund
	Created bool
}

// HandleWebhook verifies and applies one gateway webhook delivery. Replays of
// the same captured payment leave exactly one fund.
func (s *FundService) HandleWebhook(ctx context.Context, body []byte, signature string) (*WebhookResult, error) {
	if s.webhookSecret == "" {
		return nil, ErrGatewayNotConfigured
	}
	if !payment.VerifySignature(body, signature, s.webhookSecret) {
		return nil, ErrSignatureMismatch
	}

	event, err := payment.ParseWebhook(body)
	if err != nil {
		return nil, validationError("%v", err)
	}
	result := &WebhookResult{Event: event.Event}
	if event.Event != payment.EventPaymentCaptured {
		return result, nil
	}

	entity := event.Payload.Payment.Entity
	if strings.TrimSpace(entity.ID) == "" {
		return nil, validationError("payment id is required")
	}
	if entity.Amount < 1 || entity.Amount > maxAmountMinor {
		return nil, ErrInvalidAmount
	}

	currency := strings.ToUpper(strings.TrimSpace(entity.Currency))
	if currency == "" {
		currency = s.currency
	}

	fund := &models.Fund{
		Amount:    entity.Amount,
		Currency:  currency,
		DonorName: optionalText(entity.Note("donorName")),
		Message:   optionalText(entity.Note("message")),
		PaymentID: strings.TrimSpace(entity.ID),
		Source:    models.FundSourceWebhook,
	}
	created, err := s.record(ctx, fund)
	if err != nil {
		return nil, err
	}

	result.Fund = fund
	result.Created = created
	return result, nil
}

// ConfirmFundInput is the client-side confirmation sent after checkout.
type ConfirmFundInput struct {
	Amount    float64
	PaymentID string
	DonorName string
	Message   string
}

// ConfirmFromClient records a fund reported by the client after checkout. If
// the webhook already recorded the payment, the stored fund is returned
// unchanged and created is false.
func (s *FundService) ConfirmFromClient(ctx context.Context, input ConfirmFundInput) (*models.Fund, bool, error) {
	paymentID := strings.TrimSpace(input.PaymentID)
	if paymentID == "" {
		return nil, false, validationError("payment id is required")
	}
	minor, err := validAmount(input.Amount)
	if err != nil {
		return nil, false, err
	}

	fund := &models.Fund{
		Amount:    minor,
		Currency:  s.currency,
		DonorName: optionalText(input.DonorName),
		Message:   optionalText(input.Message),
		PaymentID: paymentID,
		Source:    models.FundSourceClient,
	}
	created, err := s.record(ctx, fund)
	if err != nil {
		return nil, false, err
	}
	return fund, created, nil
}

func (s *FundService) record(ctx context.Context, fund *models.Fund) (bool, error) {
	created, err := s.fundRepo.RecordOnce(ctx, fund)
	if err != nil {
		log.Printf("Failed to record fund for payment %s: %v", fund.PaymentID, err)
		return false, upstreamError("record fund", err)
	}
	if !created {
		log.Printf("Payment %s already recorded as fund %d", fund.PaymentID, fund.ID)
		return false, nil
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Failed to invalidate fund cache: %v", err)
	}
	if err := s.publisher.Publish(ctx, events.TopicFundRecorded, fund.PaymentID, fund); err != nil {
		log.Printf("Failed to publish %s for payment %s: %v", events.TopicFundRecorded, fund.PaymentID, err)
	}
	return true, nil
}

// List returns up to limit of the newest funds. limit is clamped to
// [1, MaxPageSize].
func (s *FundService) List(ctx context.Context, limit int) ([]models.Fund, error) {
	if limit < constants.MinPageSize {
		limit = constants.DefaultPageSize
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}

	funds, ok := s.cache.GetRecent(ctx)
	if !ok {
		var err error
		funds, err = s.fundRepo.ListRecent(ctx, constants.MaxPageSize)
		if err != nil {
			return nil, upstreamError("list funds", err)
		}
		s.cache.SetRecent(ctx, funds)
	}

	if len(funds) > limit {
		funds = funds[:limit]
	}
	return funds, nil
}

// Total returns the sum of all funds in major units
func (s *FundService) Total(ctx context.Context) (float64, error) {
	if total, ok := s.cache.GetTotal(ctx); ok {
		return ToMajorUnits(total), nil
	}

	total, err := s.fundRepo.SumAmount(ctx)
	if err != nil {
		return 0, upstreamError("sum funds", err)
	}
	s.cache.SetTotal(ctx, total)
	return ToMajorUnits(total), nil
}

// Currency is the currency new orders are created in.
func (s *FundService) Currency() string {
	return s.currency
}

func optionalText(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
