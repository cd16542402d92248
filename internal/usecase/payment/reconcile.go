package payment

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
)

// Reconcile applies a provider's verdict on a payment to our records.
type Reconcile struct {
	payments payment.Repository
	gateways map[string]payment.Gateway
	primary  payment.Gateway
	audit    *audit.Dispatcher
	log      zerolog.Logger
}

// NewReconcile takes every configured gateway. primary answers for provider
// ids we have not seen yet, which is how webhooks arrive.
func NewReconcile(
	payments payment.Repository,
	primary payment.Gateway,
	others []payment.Gateway,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *Reconcile {
	gateways := map[string]payment.Gateway{primary.Name(): primary}
	for _, g := range others {
		gateways[g.Name()] = g
	}
	return &Reconcile{
		payments: payments,
		gateways: gateways,
		primary:  primary,
		audit:    audit,
		log:      log,
	}
}

func (uc *Reconcile) gatewayFor(ctx context.Context, providerPaymentID string) payment.Gateway {
	known, err := uc.payments.GetPaymentByProviderID(ctx, providerPaymentID)
	if err != nil {
		return uc.primary
	}
	if g, ok := uc.gateways[known.Provider]; ok {
		return g
	}
	return uc.primary
}

func (uc *Reconcile) Execute(
	ctx context.Context,
	providerPaymentID string,
) (*Result, error) {

	if providerPaymentID == "" {
		return nil, httperr.ErrValidation("invalid_provider_payment_id")
	}

	// --------------------------------------------------
	// Provider verdict
	// --------------------------------------------------
	pp, err := uc.gatewayFor(ctx, providerPaymentID).FetchPayment(ctx, providerPaymentID)
	if err != nil {
		uc.log.Error().Err(err).Str("provider_payment_id", providerPaymentID).Msg("payment fetch failed")
		return nil, err
	}

	p, err := uc.payments.GetPayment(ctx, pp.ExternalReference)
	if err != nil {
		return nil, err
	}

	log := uc.log.With().
		Str("payment_id", p.PaymentID).
		Str("provider_payment_id", pp.ProviderPaymentID).
		Str("status", string(pp.Status)).
		Logger()

	switch pp.Status {

	// --------------------------------------------------
	// Completed: confirm booking in the same write
	// --------------------------------------------------
	case payment.StatusCompleted:
		done, b, err := uc.payments.Complete(ctx, p.PaymentID, pp.ProviderPaymentID)
		if err != nil && done == nil {
			return nil, err
		}

		metrics.IncPaymentReconciled(string(payment.StatusCompleted))
		log.Info().Msg("payment reconciled")
		uc.audit.Dispatch(audit.Event{
			MerchantID: b.MerchantID,
			UserID:     audit.Uint(p.UserID),
			ActorRole:  "provider",
			Action:     "payment_completed",
			Entity:     "booking",
			EntityID:   audit.Uint(b.ID),
			Metadata:   map[string]any{"payment_id": p.PaymentID},
		})

		return &Result{Payment: done, Booking: b}, err

	// --------------------------------------------------
	// Failed: booking stays as it is
	// --------------------------------------------------
	case payment.StatusFailed:
		if p.Status == string(payment.StatusCompleted) {
			return &Result{Payment: p}, nil
		}

		reason := pp.Detail
		if reason == "" {
			reason = "rejected_by_provider"
		}
		if err := uc.payments.MarkFailed(ctx, p.PaymentID, reason); err != nil {
			return nil, err
		}
		p.Status = string(payment.StatusFailed)
		p.FailureReason = reason

		metrics.IncPaymentReconciled(string(payment.StatusFailed))
		log.Warn().Str("reason", reason).Msg("payment failed")

		return &Result{Payment: p}, httperr.ErrPayment("payment_failed")

	// --------------------------------------------------
	// Still pending
	// --------------------------------------------------
	default:
		if p.ProviderPaymentID == "" {
			p.ProviderPaymentID = pp.ProviderPaymentID
			if err := uc.payments.UpdatePayment(ctx, p); err != nil {
				return nil, err
			}
		}
		metrics.IncPaymentReconciled(string(payment.StatusPending))
		log.Info().Msg("payment still pending")

		return &Result{Payment: p}, nil
	}
}
