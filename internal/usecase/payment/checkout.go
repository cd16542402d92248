package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/idempotency"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const checkoutTTL = 24 * time.Hour

// ======================================================
// INPUT
// ======================================================

type CheckoutInput struct {
	BookingID      uint
	Method         string
	IdempotencyKey string
}

// ======================================================
// USE CASE
// ======================================================

type Checkout struct {
	bookings  domain.BookingRepository
	users     domain.UserRepository
	payments  payment.Repository
	gateways  map[string]payment.Gateway
	reconcile *Reconcile
	coins     *PayWithCoins
	requests  idempotency.Store
	currency  string
	log       zerolog.Logger
}

func NewCheckout(
	bookings domain.BookingRepository,
	users domain.UserRepository,
	payments payment.Repository,
	gateways []payment.Gateway,
	reconcile *Reconcile,
	coins *PayWithCoins,
	requests idempotency.Store,
	currency string,
	log zerolog.Logger,
) *Checkout {
	byName := make(map[string]payment.Gateway, len(gateways))
	for _, g := range gateways {
		byName[g.Name()] = g
	}
	return &Checkout{
		bookings:  bookings,
		users:     users,
		payments:  payments,
		gateways:  byName,
		reconcile: reconcile,
		coins:     coins,
		requests:  requests,
		currency:  currency,
		log:       log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute starts payment of a pending booking. A repeated idempotency key
// returns the first result instead of charging again.
func (uc *Checkout) Execute(
	ctx context.Context,
	session domain.Session,
	in CheckoutInput,
) (*Result, error) {

	method, ok := payment.ParseMethod(in.Method)
	if !ok {
		return nil, httperr.ErrValidation("invalid_method")
	}

	if in.IdempotencyKey == "" {
		return uc.run(ctx, session, in.BookingID, method)
	}

	// --------------------------------------------------
	// Idempotency
	// --------------------------------------------------
	key := fmt.Sprintf("checkout:%d:%s", session.UserID, in.IdempotencyKey)

	if raw, found, err := uc.requests.Result(ctx, key); err != nil {
		return nil, err
	} else if found {
		var prev Result
		if err := json.Unmarshal(raw, &prev); err != nil {
			return nil, err
		}
		return &prev, nil
	}

	fresh, err := uc.requests.Reserve(ctx, key, checkoutTTL)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, httperr.ErrConflict("request_in_progress")
	}

	res, err := uc.run(ctx, session, in.BookingID, method)
	if err != nil {
		_ = uc.requests.Release(ctx, key)
		return nil, err
	}

	if raw, mErr := json.Marshal(res); mErr == nil {
		if sErr := uc.requests.SaveResult(ctx, key, raw, checkoutTTL); sErr != nil {
			uc.log.Warn().Err(sErr).Str("key", key).Msg("idempotent result not stored")
		}
	}

	return res, nil
}

func (uc *Checkout) run(
	ctx context.Context,
	session domain.Session,
	bookingID uint,
	method payment.Method,
) (*Result, error) {

	if method == payment.MethodCoins {
		return uc.coins.Execute(ctx, session, bookingID)
	}

	gw, ok := uc.gateways[string(method)]
	if !ok {
		return nil, httperr.ErrValidation("payment_method_unavailable")
	}

	b, err := payableBooking(ctx, uc.bookings, session, bookingID)
	if err != nil {
		return nil, err
	}

	var payerEmail string
	if u, err := uc.users.GetUser(ctx, session.UserID); err == nil {
		payerEmail = u.Email
	}

	// --------------------------------------------------
	// Pending payment row
	// --------------------------------------------------
	p := &models.Payment{
		PaymentID: uuid.NewString(),
		UserID:    session.UserID,
		BookingID: b.ID,
		Method:    string(method),
		Amount:    b.Amount,
		Currency:  uc.currency,
		Status:    string(payment.StatusPending),
		Provider:  gw.Name(),
	}
	if err := uc.payments.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Provider order
	// --------------------------------------------------
	order, err := gw.CreateOrder(ctx, payment.OrderRequest{
		ExternalReference: p.PaymentID,
		Amount:            b.Amount,
		Currency:          uc.currency,
		Description:       describe(b),
		PayerEmail:        payerEmail,
	})
	if err != nil {
		uc.log.Error().Err(err).Str("payment_id", p.PaymentID).Msg("provider order failed")
		if mErr := uc.payments.MarkFailed(ctx, p.PaymentID, "provider_error"); mErr != nil {
			uc.log.Error().Err(mErr).Str("payment_id", p.PaymentID).Msg("mark failed")
		}
		return nil, httperr.ErrPayment("payment_provider_error")
	}

	p.OrderID = order.OrderID
	p.ProviderPaymentID = order.ProviderPaymentID
	if err := uc.payments.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("payment_id", p.PaymentID).
		Str("provider", gw.Name()).
		Uint("booking_id", b.ID).
		Msg("checkout started")

	// Synchronous providers already know the outcome.
	if order.ProviderPaymentID != "" {
		return uc.reconcile.Execute(ctx, order.ProviderPaymentID)
	}

	return &Result{Payment: p, Booking: b, CheckoutURL: order.CheckoutURL}, nil
}
