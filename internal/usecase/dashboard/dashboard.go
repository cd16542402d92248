package dashboard

import (
	"context"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// ======================================================
// OUTPUT
// ======================================================

type MerchantSummary struct {
	Date             string           `json:"date"`
	BookingsToday    int64            `json:"bookings_today"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	UniqueCustomers  int64            `json:"unique_customers"`
	AvailableSlots   int64            `json:"available_slots"`
	BookedSlots      int64            `json:"booked_slots"`
}

type AdminSummary struct {
	PendingApplications int64 `json:"pending_applications"`
	ApprovedMerchants   int64 `json:"approved_merchants"`
	RejectedMerchants   int64 `json:"rejected_merchants"`
	TotalBookings       int64 `json:"total_bookings"`
	TotalCustomers      int64 `json:"total_customers"`
}

// ======================================================
// USE CASE
// ======================================================

// Dashboard reads aggregates straight from the stores on every call.
type Dashboard struct {
	merchants domain.MerchantRepository
	users     domain.UserRepository
	slots     domain.SlotRepository
	bookings  domain.BookingRepository
}

func NewDashboard(
	merchants domain.MerchantRepository,
	users domain.UserRepository,
	slots domain.SlotRepository,
	bookings domain.BookingRepository,
) *Dashboard {
	return &Dashboard{
		merchants: merchants,
		users:     users,
		slots:     slots,
		bookings:  bookings,
	}
}

// Merchant summarises one day of the caller's merchant. An empty date means
// today in the merchant's timezone.
func (uc *Dashboard) Merchant(
	ctx context.Context,
	session domain.Session,
	date string,
) (*MerchantSummary, error) {

	if err := session.RequireMerchant(session.MerchantID); err != nil {
		return nil, err
	}

	merchant, err := uc.merchants.GetMerchant(ctx, session.MerchantID)
	if err != nil {
		return nil, err
	}

	if date == "" {
		date = timezone.TodayIn(merchant.Timezone)
	} else if _, err := domain.ParseDate(date); err != nil {
		return nil, err
	}

	byStatus, err := uc.bookings.CountByStatus(ctx, merchant.ID, date)
	if err != nil {
		return nil, err
	}

	var today int64
	for _, n := range byStatus {
		today += n
	}

	customers, err := uc.bookings.CountUniqueCustomers(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}

	total, booked, err := uc.slots.CountForDay(ctx, merchant.ID, date)
	if err != nil {
		return nil, err
	}

	return &MerchantSummary{
		Date:             date,
		BookingsToday:    today,
		BookingsByStatus: byStatus,
		UniqueCustomers:  customers,
		AvailableSlots:   total - booked,
		BookedSlots:      booked,
	}, nil
}

func (uc *Dashboard) Admin(
	ctx context.Context,
	session domain.Session,
) (*AdminSummary, error) {

	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}

	byStatus, err := uc.merchants.CountMerchantsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookings.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	customers, err := uc.users.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminSummary{
		PendingApplications: byStatus[string(domain.MerchantPending)],
		ApprovedMerchants:   byStatus[string(domain.MerchantApproved)],
		RejectedMerchants:   byStatus[string(domain.MerchantRejected)],
		TotalBookings:       bookings,
		TotalCustomers:      customers,
	}, nil
}
