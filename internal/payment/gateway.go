// Package payment talks to the payment gateway: order creation and webhook
// verification.
package payment

import (
	"context"
)

// OrderRequest asks the gateway for an order of Amount minor units.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
}

// Order is the gateway order handle returned to the client, which completes
// the payment out of band.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
	KeyID    string `json:"key_id"`
}

// Gateway creates payment orders.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}
