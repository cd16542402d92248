package payment

import "context"

type OrderRequest struct {
	ExternalReference string
	Amount            int64 // minor currency units
	Currency          string
	Description       string
	PayerEmail        string
}

type Order struct {
	OrderID     string
	CheckoutURL string

	// Set by gateways that settle synchronously; the caller can reconcile
	// right away instead of waiting for a callback.
	ProviderPaymentID string
}

type ProviderPayment struct {
	ProviderPaymentID string
	ExternalReference string
	Status            Status
	Detail            string
}

// Gateway is the boundary to an external payment provider.
type Gateway interface {
	Name() string
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	FetchPayment(ctx context.Context, providerPaymentID string) (*ProviderPayment, error)
}
