package services

import (
	"context"
	"errors"
	"sync"

	"github.com/foodbridge/donation-api/internal/models"
	"github.com/foodbridge/donation-api/internal/payment"
	"github.com/foodbridge/donation-api/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

type publishedEvent struct {
	topic string
	key   string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{topic: topic, key: key})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]string, 0, len(p.events))
	for _, e := range p.events {
		topics = append(topics, e.topic)
	}
	return topics
}

// memoryFundCache is an in-process FundCache that counts invalidations.
type memoryFundCache struct {
	mu            sync.Mutex
	total         *int64
	recent        []models.Fund
	hasRecent     bool
	invalidations int
}

func (c *memoryFundCache) GetTotal(context.Context) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.total == nil {
		return 0, false
	}
	return *c.total, true
}

func (c *memoryFundCache) SetTotal(_ context.Context, total int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = &total
}

func (c *memoryFundCache) GetRecent(context.Context) ([]models.Fund, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recent, c.hasRecent
}

func (c *memoryFundCache) SetRecent(_ context.Context, funds []models.Fund) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent, c.hasRecent = funds, true
}

func (c *memoryFundCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total, c.recent, c.hasRecent = nil, nil, false
	c.invalidations++
	return nil
}

type fakeGateway struct {
	requests []payment.OrderRequest
	err      error
}

func (g *fakeGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.requests = append(g.requests, req)
	return &payment.Order{
		ID:       "order_test",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
		KeyID:    "rzp_test",
	}, nil
}

// failingFundRepo fails every call.
type failingFundRepo struct{}

func (failingFundRepo) RecordOnce(context.Context, *models.Fund) (bool, error) {
	return false, errStoreDown
}

func (failingFundRepo) FindByPaymentID(context.Context, string) (*models.Fund, error) {
	return nil, errStoreDown
}

func (failingFundRepo) ListRecent(context.Context, int) ([]models.Fund, error) {
	return nil, errStoreDown
}

func (failingFundRepo) SumAmount(context.Context) (int64, error) {
	return 0, errStoreDown
}

// failingSpotRepo wraps a real repository and fails Count for one status.
type failingSpotRepo struct {
	repository.HungerSpotRepository
	failOn models.HungerSpotStatus
}

func (r failingSpotRepo) Count(ctx context.Context, status *models.HungerSpotStatus) (int64, error) {
	if status != nil && *status == r.failOn {
		return 0, errStoreDown
	}
	return r.HungerSpotRepository.Count(ctx, status)
}

func uint64Ptr(v uint64) *uint64 { return &v }

func float64Ptr(v float64) *float64 { return &v }
