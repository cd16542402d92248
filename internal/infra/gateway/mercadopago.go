package gateway

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*mppayment.Response, error)
}

// MercadoPago creates checkout preferences and reads payment results from
// the Mercado Pago API.
type MercadoPago struct {
	preferences     preferenceCreator
	payments        paymentGetter
	notificationURL string
}

func NewMercadoPago(accessToken, notificationURL string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		preferences:     preference.NewClient(cfg),
		payments:        mppayment.NewClient(cfg),
		notificationURL: notificationURL,
	}, nil
}

func (g *MercadoPago) Name() string {
	return string(payment.MethodMercadoPago)
}

func (g *MercadoPago) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	pref := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      req.Description,
				Quantity:   1,
				UnitPrice:  float64(req.Amount) / 100,
				CurrencyID: req.Currency,
			},
		},
		ExternalReference: req.ExternalReference,
		NotificationURL:   g.notificationURL,
	}
	if req.PayerEmail != "" {
		pref.Payer = &preference.PayerRequest{Email: req.PayerEmail}
	}

	resp, err := g.preferences.Create(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream("payment_provider_error"), err)
	}

	return &payment.Order{
		OrderID:     resp.ID,
		CheckoutURL: resp.InitPoint,
	}, nil
}

func (g *MercadoPago) FetchPayment(ctx context.Context, providerPaymentID string) (*payment.ProviderPayment, error) {
	id, err := strconv.Atoi(providerPaymentID)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_provider_payment_id")
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream("payment_provider_error"), err)
	}

	return &payment.ProviderPayment{
		ProviderPaymentID: strconv.Itoa(resp.ID),
		ExternalReference: resp.ExternalReference,
		Status:            mapStatus(resp.Status),
		Detail:            resp.StatusDetail,
	}, nil
}

// mapStatus folds the provider's payment states into ours. Anything still in
// flight stays pending.
func mapStatus(s string) payment.Status {
	switch s {
	case "approved":
		return payment.StatusCompleted
	case "rejected", "cancelled", "refunded", "charged_back":
		return payment.StatusFailed
	default:
		return payment.StatusPending
	}
}

var _ payment.Gateway = (*MercadoPago)(nil)
