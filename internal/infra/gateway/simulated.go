package gateway

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

// Simulated settles every order on creation with a fixed outcome. It stands
// in for a real provider in tests and local runs.
type Simulated struct {
	outcome payment.Status

	mu     sync.Mutex
	orders map[string]payment.ProviderPayment
}

func NewSimulated(outcome payment.Status) *Simulated {
	return &Simulated{
		outcome: outcome,
		orders:  map[string]payment.ProviderPayment{},
	}
}

func (g *Simulated) Name() string {
	return string(payment.MethodSimulated)
}

func (g *Simulated) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	if req.Amount <= 0 {
		return nil, httperr.ErrValidation("invalid_amount")
	}

	providerID := "sim-" + uuid.NewString()

	g.mu.Lock()
	g.orders[providerID] = payment.ProviderPayment{
		ProviderPaymentID: providerID,
		ExternalReference: req.ExternalReference,
		Status:            g.outcome,
	}
	g.mu.Unlock()

	return &payment.Order{
		OrderID:           providerID,
		ProviderPaymentID: providerID,
	}, nil
}

func (g *Simulated) FetchPayment(_ context.Context, providerPaymentID string) (*payment.ProviderPayment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.orders[providerPaymentID]
	if !ok {
		return nil, httperr.ErrNotFound("provider_payment_not_found")
	}
	return &p, nil
}

// Settle changes the stored outcome of an order.
func (g *Simulated) Settle(providerPaymentID string, status payment.Status) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.orders[providerPaymentID]; ok {
		p.Status = status
		g.orders[providerPaymentID] = p
	}
}

var _ payment.Gateway = (*Simulated)(nil)
