package payment

import (
	"context"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway creates orders through the Razorpay Orders API.
type RazorpayGateway struct {
	client  *razorpay.Client
	keyID   string
	timeout time.Duration
}

// NewRazorpayGateway creates a gateway. Calls are bounded by timeout even when
// the caller's context has no deadline.
func NewRazorpayGateway(keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	return &RazorpayGateway{
		client:  razorpay.NewClient(keyID, keySecret),
		keyID:   keyID,
		timeout: timeout,
	}
}

type createOrderResult struct {
	body map[string]interface{}
	err  error
}

// CreateOrder creates an auto-captured order.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	data := map[string]interface{}{
		"amount":          req.Amount,
		"currency":        req.Currency,
		"receipt":         req.Receipt,
		"payment_capture": 1,
	}

	// The SDK call takes no context; the buffered channel lets the goroutine
	// finish after we stop waiting.
	done := make(chan createOrderResult, 1)
	go func() {
		body, err := g.client.Order.Create(data, nil)
		done <- createOrderResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("razorpay create order: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("razorpay create order: %w", res.err)
		}
		return orderFromResponse(res.body, g.keyID)
	}
}

// orderFromResponse converts the decoded JSON body of an order into an Order.
func orderFromResponse(body map[string]interface{}, keyID string) (*Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay create order: response has no order id")
	}

	order := &Order{
		ID:    id,
		KeyID: keyID,
	}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)

	switch amount := body["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	}

	return order, nil
}
