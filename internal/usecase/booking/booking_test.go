package booking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/memorytest"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const day = "2025-03-10"

type fixture struct {
	store      *memorytest.Store
	merchant   *models.Merchant
	service    *models.Service
	slots      []models.Slot
	customer   domain.Session
	owner      domain.Session
	create     *CreateBooking
	transition *TransitionBooking
	list       *ListBookings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memorytest.NewStore()

	m := &models.Merchant{Name: "Studio", Slug: "studio", Status: string(domain.MerchantApproved)}
	require.NoError(t, store.CreateMerchant(ctx, m))

	svc := &models.Service{MerchantID: m.ID, Name: "Haircut", DurationMin: 30, Price: 4500, Active: true}
	require.NoError(t, store.CreateService(ctx, svc))

	slots, err := domain.BuildDaySlots(m.ID, 0, day, domain.DefaultWindow())
	require.NoError(t, err)
	require.NoError(t, store.CreateBatch(ctx, slots))

	u := &models.User{Name: "Bia", Email: "bia@example.com"}
	require.NoError(t, store.CreateUser(ctx, u))

	log := zerolog.Nop()
	return &fixture{
		store:      store,
		merchant:   m,
		service:    svc,
		slots:      slots,
		customer:   domain.Session{UserID: u.ID, Role: domain.RoleCustomer},
		owner:      domain.Session{UserID: 77, Role: domain.RoleMerchant, MerchantID: m.ID},
		create:     NewCreateBooking(store, store, store, store, nil, log),
		transition: NewTransitionBooking(store, nil, log),
		list:       NewListBookings(store),
	}
}

// ======================================================
// Create
// ======================================================

func TestCreate_FromCatalogueService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.customer, CreateInput{SlotID: f.slots[2].ID, ServiceID: f.service.ID, Notes: "short"})
	require.NoError(t, err)

	assert.NotZero(t, b.ID)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, "Haircut", b.ServiceName)
	assert.Equal(t, int64(4500), b.Amount)
	assert.Equal(t, day, b.Date)
	assert.Equal(t, "10:00", b.StartTime)

	slot, _ := f.store.GetSlot(ctx, f.slots[2].ID)
	assert.True(t, slot.IsBooked)
}

func TestCreate_RejectsBookedSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := CreateInput{SlotID: f.slots[0].ID, ServiceName: "Beard", Amount: 2000}

	_, err := f.create.Execute(ctx, f.customer, in)
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, f.customer, in)
	assert.True(t, httperr.IsBusiness(err, "slot_already_booked"))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestCreate_ConcurrentRequestsBookOnce(t *testing.T) {
	f := newFixture(t)
	in := CreateInput{SlotID: f.slots[5].ID, ServiceName: "Beard", Amount: 2000}

	var ok atomic.Int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.create.Execute(context.Background(), f.customer, in); err == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	n, _ := f.store.CountAll(context.Background())
	assert.Equal(t, int64(1), n)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.create.Execute(ctx, f.customer, CreateInput{ServiceName: "x"})
	assert.True(t, httperr.IsBusiness(err, "invalid_slot_id"))

	_, err = f.create.Execute(ctx, f.customer, CreateInput{SlotID: f.slots[0].ID})
	assert.True(t, httperr.IsBusiness(err, "invalid_service_name"))

	_, err = f.create.Execute(ctx, f.customer, CreateInput{SlotID: 9999, ServiceName: "x"})
	assert.True(t, httperr.IsBusiness(err, "slot_not_found"))

	_, err = f.create.Execute(ctx, domain.Session{}, CreateInput{SlotID: f.slots[0].ID, ServiceName: "x"})
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	n, _ := f.store.CountAll(ctx)
	assert.Zero(t, n)
}

func TestCreate_WithSettledPaymentIsConfirmed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := &models.Payment{
		PaymentID: "pay-pre",
		UserID:    f.customer.UserID,
		Method:    string(payment.MethodSimulated),
		Amount:    4500,
		Status:    string(payment.StatusCompleted),
	}
	require.NoError(t, f.store.CreatePayment(ctx, p))

	b, err := f.create.Execute(ctx, f.customer, CreateInput{SlotID: f.slots[1].ID, ServiceID: f.service.ID, PaymentID: "pay-pre"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, "pay-pre", b.PaymentID)

	stored, _ := f.store.GetPayment(ctx, "pay-pre")
	assert.Equal(t, b.ID, stored.BookingID)

	_, err = f.create.Execute(ctx, f.customer, CreateInput{SlotID: f.slots[2].ID, ServiceID: f.service.ID, PaymentID: "pay-pre"})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment"))

	// a create that read the payment before it was linked loses at write time
	late := &models.Booking{
		UserID: f.customer.UserID, MerchantID: f.slots[2].MerchantID, SlotID: f.slots[2].ID,
		ServiceName: "Cut", PaymentID: "pay-pre", Status: string(domain.StatusConfirmed),
	}
	err = f.store.CreateForSlot(ctx, late)
	assert.True(t, httperr.IsBusiness(err, "payment_already_used"))
	slot, _ := f.store.GetSlot(ctx, f.slots[2].ID)
	assert.False(t, slot.IsBooked)
}

// ======================================================
// Transition
// ======================================================

func TestTransition_Table(t *testing.T) {
	all := []domain.Status{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled}
	allowed := map[[2]domain.Status]bool{
		{domain.StatusPending, domain.StatusConfirmed}:   true,
		{domain.StatusPending, domain.StatusCancelled}:   true,
		{domain.StatusConfirmed, domain.StatusCancelled}: true,
		{domain.StatusCancelled, domain.StatusConfirmed}: true,
	}

	for _, from := range all {
		for _, to := range all {
			err := domain.CanTransition(from, to)
			if allowed[[2]domain.Status{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s -> %s", from, to)
			}
		}
	}
}

func TestTransition_CancelReleasesAndRestoreRetakes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotID := f.slots[3].ID

	b, err := f.create.Execute(ctx, f.customer, CreateInput{SlotID: slotID, ServiceName: "Beard", Amount: 2000})
	require.NoError(t, err)

	b, err = f.transition.Execute(ctx, f.owner, b.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	assert.NotNil(t, b.CancelledAt)
	slot, _ := f.store.GetSlot(ctx, slotID)
	assert.False(t, slot.IsBooked)

	b, err = f.transition.Execute(ctx, f.owner, b.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Nil(t, b.CancelledAt)
	slot, _ = f.store.GetSlot(ctx, slotID)
	assert.True(t, slot.IsBooked)
}

func TestTransition_RestoreFailsWhenSlotRetaken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	slotID := f.slots[4].ID

	first, err := f.create.Execute(ctx, f.customer, CreateInput{SlotID: slotID, ServiceName: "Beard", Amount: 2000})
	require.NoError(t, err)
	_, err = f.transition.Execute(ctx, f.owner, first.ID, "cancelled")
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, f.customer, CreateInput{SlotID: slotID, ServiceName: "Beard", Amount: 2000})
	require.NoError(t, err)

	_, err = f.transition.Execute(ctx, f.owner, first.ID, "confirmed")
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	got, _ := f.store.GetBooking(ctx, first.ID)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}

func TestTransition_Guards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.customer, CreateInput{SlotID: f.slots[6].ID, ServiceName: "Beard", Amount: 2000})
	require.NoError(t, err)

	_, err = f.transition.Execute(ctx, f.customer, b.ID, "confirmed")
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	_, err = f.transition.Execute(ctx, f.owner, b.ID, "pending")
	assert.True(t, httperr.IsBusiness(err, "invalid_transition"))

	_, err = f.transition.Execute(ctx, f.owner, b.ID, "done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

// ======================================================
// List
// ======================================================

func TestList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, f.customer, CreateInput{SlotID: f.slots[7].ID, ServiceName: "Beard", Amount: 2000})
	require.NoError(t, err)

	mine, err := f.list.ForCustomer(ctx, f.customer)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := f.list.ForMerchant(ctx, f.owner, day)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	_, err = f.list.ForMerchant(ctx, f.customer, day)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	got, err := f.list.Get(ctx, f.customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.list.Get(ctx, domain.Session{UserID: 999, Role: domain.RoleCustomer}, b.ID)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}
