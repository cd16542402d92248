package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/gateway"
	"github.com/BruksfildServices01/salon-booking/internal/infra/idempotency"
	"github.com/BruksfildServices01/salon-booking/internal/infra/memorytest"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// Mock gateway
// ======================================================

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Name() string { return string(payment.MethodMercadoPago) }

func (m *mockGateway) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	args := m.Called(ctx, req)
	if o := args.Get(0); o != nil {
		return o.(*payment.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGateway) FetchPayment(ctx context.Context, id string) (*payment.ProviderPayment, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*payment.ProviderPayment), args.Error(1)
	}
	return nil, args.Error(1)
}

// ======================================================
// Fixture
// ======================================================

type fixture struct {
	store    *memorytest.Store
	mp       *mockGateway
	sim      *gateway.Simulated
	customer domain.Session
	booking  *models.Booking

	checkout  *Checkout
	reconcile *Reconcile
	notify    *HandleNotification
	coins     *PayWithCoins
}

func newFixture(t *testing.T, simOutcome payment.Status, amount int64) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memorytest.NewStore()

	m := &models.Merchant{Name: "Studio", Slug: "studio", Status: string(domain.MerchantApproved)}
	require.NoError(t, store.CreateMerchant(ctx, m))

	slots, err := domain.BuildDaySlots(m.ID, 0, "2025-03-10", domain.DefaultWindow())
	require.NoError(t, err)
	require.NoError(t, store.CreateBatch(ctx, slots))

	u := &models.User{Name: "Bia", Email: "bia@example.com"}
	require.NoError(t, store.CreateUser(ctx, u))

	b := &models.Booking{
		UserID:      u.ID,
		MerchantID:  m.ID,
		SlotID:      slots[0].ID,
		ServiceName: "Haircut",
		Amount:      amount,
		Date:        slots[0].Date,
		StartTime:   slots[0].StartTime,
		Status:      string(domain.StatusPending),
	}
	require.NoError(t, store.CreateForSlot(ctx, b))

	log := zerolog.Nop()
	mp := &mockGateway{}
	sim := gateway.NewSimulated(simOutcome)

	reconcile := NewReconcile(store, mp, []payment.Gateway{sim}, nil, log)
	coins := NewPayWithCoins(store, store, 100, "BRL", nil, log)

	return &fixture{
		store:     store,
		mp:        mp,
		sim:       sim,
		customer:  domain.Session{UserID: u.ID, Role: domain.RoleCustomer},
		booking:   b,
		checkout:  NewCheckout(store, store, store, []payment.Gateway{mp, sim}, reconcile, coins, idempotency.NewMemoryStore(), "BRL", log),
		reconcile: reconcile,
		notify:    NewHandleNotification(reconcile, idempotency.NewMemoryStore(), log),
		coins:     coins,
	}
}

func (f *fixture) bookingNow(t *testing.T) *models.Booking {
	t.Helper()
	b, err := f.store.GetBooking(context.Background(), f.booking.ID)
	require.NoError(t, err)
	return b
}

// ======================================================
// Reconcile
// ======================================================

func TestSimulatedCheckout_CompletedConfirmsBooking(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 4500)

	res, err := f.checkout.Execute(context.Background(), f.customer, CheckoutInput{
		BookingID: f.booking.ID,
		Method:    "simulated",
	})
	require.NoError(t, err)

	assert.Equal(t, string(payment.StatusCompleted), res.Payment.Status)
	b := f.bookingNow(t)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, res.Payment.PaymentID, b.PaymentID)
}

func TestSimulatedCheckout_FailedLeavesBookingPending(t *testing.T) {
	f := newFixture(t, payment.StatusFailed, 4500)

	res, err := f.checkout.Execute(context.Background(), f.customer, CheckoutInput{
		BookingID: f.booking.ID,
		Method:    "simulated",
	})
	assert.True(t, httperr.IsBusiness(err, "payment_failed"))
	assert.Equal(t, httperr.KindPayment, httperr.KindOf(err))
	require.NotNil(t, res)
	assert.Equal(t, string(payment.StatusFailed), res.Payment.Status)

	b := f.bookingNow(t)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Empty(t, b.PaymentID)
}

func TestReconcile_IsIdempotent(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 4500)
	ctx := context.Background()

	res, err := f.checkout.Execute(ctx, f.customer, CheckoutInput{BookingID: f.booking.ID, Method: "simulated"})
	require.NoError(t, err)

	again, err := f.reconcile.Execute(ctx, res.Payment.ProviderPaymentID)
	require.NoError(t, err)
	assert.Equal(t, res.Payment.PaymentID, again.Booking.PaymentID)
	assert.Equal(t, string(domain.StatusConfirmed), again.Booking.Status)
}

func TestReconcile_CancelledBookingStaysCancelled(t *testing.T) {
	f := newFixture(t, payment.StatusPending, 4500)
	ctx := context.Background()

	res, err := f.checkout.Execute(ctx, f.customer, CheckoutInput{BookingID: f.booking.ID, Method: "simulated"})
	require.NoError(t, err)
	assert.Equal(t, string(payment.StatusPending), res.Payment.Status)

	_, err = f.store.ApplyTransition(ctx, f.booking.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	f.sim.Settle(res.Payment.ProviderPaymentID, payment.StatusCompleted)
	_, err = f.reconcile.Execute(ctx, res.Payment.ProviderPaymentID)
	assert.True(t, httperr.IsBusiness(err, "booking_cancelled"))

	assert.Equal(t, string(domain.StatusCancelled), f.bookingNow(t).Status)
	p, _ := f.store.GetPayment(ctx, res.Payment.PaymentID)
	assert.Equal(t, string(payment.StatusCompleted), p.Status)
}

// ======================================================
// Mercado Pago flow
// ======================================================

func TestCheckout_ProviderRedirectThenWebhook(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 4500)
	ctx := context.Background()

	f.mp.On("CreateOrder", mock.Anything, mock.MatchedBy(func(r payment.OrderRequest) bool {
		return r.Amount == 4500 && r.Currency == "BRL" && r.PayerEmail == "bia@example.com"
	})).Return(&payment.Order{OrderID: "pref-1", CheckoutURL: "https://mp/pref-1"}, nil)

	res, err := f.checkout.Execute(ctx, f.customer, CheckoutInput{BookingID: f.booking.ID, Method: "mercadopago"})
	require.NoError(t, err)
	assert.Equal(t, "https://mp/pref-1", res.CheckoutURL)
	assert.Equal(t, string(payment.StatusPending), res.Payment.Status)
	assert.Equal(t, string(domain.StatusPending), f.bookingNow(t).Status)

	f.mp.On("FetchPayment", mock.Anything, "555").Return(&payment.ProviderPayment{
		ProviderPaymentID: "555",
		ExternalReference: res.Payment.PaymentID,
		Status:            payment.StatusCompleted,
	}, nil).Once()

	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"id": 9001, "type": "payment", "action": "payment.updated", "data": {"id": "555"}}`), &n))

	processed, err := f.notify.Execute(ctx, n)
	require.NoError(t, err)
	assert.True(t, processed)

	b := f.bookingNow(t)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, res.Payment.PaymentID, b.PaymentID)

	processed, err = f.notify.Execute(ctx, n)
	require.NoError(t, err)
	assert.False(t, processed)

	f.mp.AssertExpectations(t)
}

func TestCheckout_ProviderErrorMarksPaymentFailed(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 4500)
	ctx := context.Background()

	f.mp.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	_, err := f.checkout.Execute(ctx, f.customer, CheckoutInput{BookingID: f.booking.ID, Method: "mercadopago"})
	assert.True(t, httperr.IsBusiness(err, "payment_provider_error"))
	assert.Equal(t, httperr.KindPayment, httperr.KindOf(err))
	assert.Equal(t, string(domain.StatusPending), f.bookingNow(t).Status)
}

func TestCheckout_IdempotencyKeyReplaysResult(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 4500)
	ctx := context.Background()

	f.mp.On("CreateOrder", mock.Anything, mock.Anything).
		Return(&payment.Order{OrderID: "pref-1", CheckoutURL: "https://mp/pref-1"}, nil).Once()

	in := CheckoutInput{BookingID: f.booking.ID, Method: "mercadopago", IdempotencyKey: "abc"}
	first, err := f.checkout.Execute(ctx, f.customer, in)
	require.NoError(t, err)
	second, err := f.checkout.Execute(ctx, f.customer, in)
	require.NoError(t, err)

	assert.Equal(t, first.Payment.PaymentID, second.Payment.PaymentID)
	f.mp.AssertNumberOfCalls(t, "CreateOrder", 1)
}

func TestCheckout_Guards(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 4500)
	ctx := context.Background()

	_, err := f.checkout.Execute(ctx, f.customer, CheckoutInput{BookingID: f.booking.ID, Method: "cash"})
	assert.True(t, httperr.IsBusiness(err, "invalid_method"))

	_, err = f.checkout.Execute(ctx, domain.Session{UserID: 999}, CheckoutInput{BookingID: f.booking.ID, Method: "simulated"})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

func TestNotification_IgnoresOtherTypes(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 4500)

	processed, err := f.notify.Execute(context.Background(), Notification{Type: "merchant_order"})
	assert.NoError(t, err)
	assert.False(t, processed)
}

// ======================================================
// Coins
// ======================================================

func TestPayWithCoins_InsufficientBalance(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 1200)
	ctx := context.Background()
	f.store.SetCoins(f.customer.UserID, 10)

	_, err := f.checkout.Execute(ctx, f.customer, CheckoutInput{BookingID: f.booking.ID, Method: "coins"})
	assert.True(t, httperr.IsBusiness(err, "insufficient_coins"))
	assert.Equal(t, httperr.KindPayment, httperr.KindOf(err))

	u, _ := f.store.GetUser(ctx, f.customer.UserID)
	assert.Equal(t, 10, u.Coins)
	assert.Equal(t, string(domain.StatusPending), f.bookingNow(t).Status)
}

func TestPayWithCoins_Success(t *testing.T) {
	f := newFixture(t, payment.StatusCompleted, 1250)
	ctx := context.Background()
	f.store.SetCoins(f.customer.UserID, 20)

	res, err := f.coins.Execute(ctx, f.customer, f.booking.ID)
	require.NoError(t, err)

	assert.Equal(t, 13, res.Payment.CoinsUsed)
	assert.Equal(t, string(payment.StatusCompleted), res.Payment.Status)
	assert.Equal(t, string(domain.StatusConfirmed), res.Booking.Status)

	u, _ := f.store.GetUser(ctx, f.customer.UserID)
	assert.Equal(t, 7, u.Coins)

	_, err = f.coins.Execute(ctx, f.customer, f.booking.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_payable"))
}

func TestFlexibleID(t *testing.T) {
	var n Notification
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a1","data":{"id":123}}`), &n))
	assert.Equal(t, FlexibleID("a1"), n.ID)
	assert.Equal(t, FlexibleID("123"), n.Data.ID)
}
