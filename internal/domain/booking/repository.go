package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type MerchantRepository interface {
	// -------- Merchant --------
	GetMerchant(ctx context.Context, id uint) (*models.Merchant, error)
	GetMerchantBySlug(ctx context.Context, slug string) (*models.Merchant, error)
	ListMerchants(ctx context.Context, status string) ([]models.Merchant, error)
	CreateMerchant(ctx context.Context, m *models.Merchant) error
	// CreateForOwner inserts the merchant and attaches it to m.OwnerID in
	// one write. Neither change survives if the other fails.
	CreateForOwner(ctx context.Context, m *models.Merchant) error
	UpdateMerchant(ctx context.Context, m *models.Merchant) error
	CountMerchantsByStatus(ctx context.Context) (map[string]int64, error)

	// -------- Service catalogue --------
	GetService(ctx context.Context, merchantID, serviceID uint) (*models.Service, error)
	ListServices(ctx context.Context, merchantID uint, activeOnly bool) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
}

type WorkerRepository interface {
	GetWorker(ctx context.Context, merchantID, workerID uint) (*models.Worker, error)
	ListWorkers(ctx context.Context, merchantID uint) ([]models.Worker, error)
	CreateWorker(ctx context.Context, w *models.Worker) error
	UpdateWorker(ctx context.Context, w *models.Worker) error
}

type UserRepository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	// AttachMerchant links a user to the merchant they own and makes them a
	// merchant. Only the two columns are written.
	AttachMerchant(ctx context.Context, userID, merchantID uint) error
	CountCustomers(ctx context.Context) (int64, error)
}

type SlotRepository interface {
	// ListForDay returns every slot of the lane ordered by start time.
	ListForDay(ctx context.Context, merchantID, workerID uint, date string) ([]models.Slot, error)

	// ListAvailable returns the unbooked, unabsorbed slots of the lane ordered
	// by start time.
	ListAvailable(ctx context.Context, merchantID, workerID uint, date string) ([]models.Slot, error)

	// CreateBatch persists all slots or none. A unique violation means another
	// writer generated the day first and is reported as conflict "slots_exist".
	CreateBatch(ctx context.Context, slots []models.Slot) error

	GetSlot(ctx context.Context, id uint) (*models.Slot, error)

	// ListSiblings returns the other slots of the same merchant, worker and date.
	ListSiblings(ctx context.Context, slot *models.Slot) ([]models.Slot, error)

	// Extend sets the slot's end time and links the given siblings to it
	// through AbsorbedBy, each one only if it is still free. Any sibling lost
	// to a concurrent booking or extension aborts the whole write with
	// conflict "extension_conflict".
	Extend(ctx context.Context, slotID uint, newEnd string, duration int, absorb []uint) (*models.Slot, error)

	// CountForDay counts all and booked slots of a merchant on a date.
	// Absorbed slots are not counted.
	CountForDay(ctx context.Context, merchantID uint, date string) (total int64, booked int64, err error)
}

type BookingRepository interface {
	// CreateForSlot marks the slot booked only if it is still free and
	// inserts the booking in the same transaction. A non-empty b.PaymentID is
	// linked in that transaction too, only while the payment is completed and
	// unlinked; otherwise the call fails with conflict "payment_already_used".
	CreateForSlot(ctx context.Context, b *models.Booking) error

	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	ListByMerchant(ctx context.Context, merchantID uint, date string) ([]models.Booking, error)

	// ApplyTransition moves a booking from one status to another if it is
	// still in the from status. Cancelling frees the slot; leaving cancelled
	// takes the slot back and fails with "slot_taken" if it is held.
	ApplyTransition(ctx context.Context, id uint, from, to Status) (*models.Booking, error)

	// -------- Aggregates --------
	CountByStatus(ctx context.Context, merchantID uint, date string) (map[string]int64, error)
	CountUniqueCustomers(ctx context.Context, merchantID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
