package memorytest

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func byStart(a, b models.Slot) int {
	return strings.Compare(a.StartTime, b.StartTime)
}

func (s *Store) lane(merchantID, workerID uint, date string, keep func(models.Slot) bool) []models.Slot {
	var out []models.Slot
	for _, sl := range sortedValues(s.slots, byStart) {
		if sl.MerchantID == merchantID && sl.WorkerID == workerID && sl.Date == date && keep(sl) {
			out = append(out, sl)
		}
	}
	return out
}

func (s *Store) ListForDay(_ context.Context, merchantID, workerID uint, date string) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lane(merchantID, workerID, date, func(models.Slot) bool { return true }), nil
}

func (s *Store) ListAvailable(_ context.Context, merchantID, workerID uint, date string) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lane(merchantID, workerID, date, func(sl models.Slot) bool {
		return !sl.IsBooked && sl.AbsorbedBy == 0
	}), nil
}

func (s *Store) CreateBatch(_ context.Context, slots []models.Slot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range slots {
		for _, existing := range s.slots {
			if existing.MerchantID == n.MerchantID && existing.WorkerID == n.WorkerID &&
				existing.Date == n.Date && existing.StartTime == n.StartTime {
				return httperr.ErrConflict("slots_exist")
			}
		}
	}

	now := time.Now()
	for i := range slots {
		slots[i].ID = s.id()
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		s.slots[slots[i].ID] = slots[i]
	}
	return nil
}

func (s *Store) GetSlot(_ context.Context, id uint) (*models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[id]
	if !ok {
		return nil, httperr.ErrNotFound("slot_not_found")
	}
	return &sl, nil
}

func (s *Store) ListSiblings(_ context.Context, slot *models.Slot) ([]models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lane(slot.MerchantID, slot.WorkerID, slot.Date, func(sl models.Slot) bool {
		return sl.ID != slot.ID
	}), nil
}

func (s *Store) Extend(_ context.Context, slotID uint, newEnd string, duration int, absorb []uint) (*models.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[slotID]
	if !ok {
		return nil, httperr.ErrNotFound("slot_not_found")
	}

	for _, id := range absorb {
		sib, ok := s.slots[id]
		if !ok || sib.IsBooked || sib.AbsorbedBy != 0 {
			return nil, httperr.ErrConflict("extension_conflict")
		}
	}
	for _, id := range absorb {
		sib := s.slots[id]
		sib.AbsorbedBy = slotID
		s.slots[id] = sib
	}

	sl.EndTime = newEnd
	sl.ServiceDuration = duration
	sl.UpdatedAt = time.Now()
	s.slots[slotID] = sl
	return &sl, nil
}

func (s *Store) CountForDay(_ context.Context, merchantID uint, date string) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total, booked int64
	for _, sl := range s.slots {
		if sl.MerchantID != merchantID || sl.Date != date || sl.AbsorbedBy != 0 {
			continue
		}
		total++
		if sl.IsBooked {
			booked++
		}
	}
	return total, booked, nil
}

// BookSlot marks a slot booked without creating a booking.
func (s *Store) BookSlot(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sl, ok := s.slots[id]; ok {
		sl.IsBooked = true
		s.slots[id] = sl
	}
}

// ======================================================
// Bookings
// ======================================================

func (s *Store) claimSlot(slotID uint, busyCode string) error {
	sl, ok := s.slots[slotID]
	if !ok {
		return httperr.ErrNotFound("slot_not_found")
	}
	if sl.IsBooked || sl.AbsorbedBy != 0 {
		return httperr.ErrConflict(busyCode)
	}
	sl.IsBooked = true
	s.slots[slotID] = sl
	return nil
}

func (s *Store) CreateForSlot(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var paid models.Payment
	if b.PaymentID != "" {
		p, ok := s.payments[b.PaymentID]
		if !ok || p.BookingID != 0 || p.Status != string(payment.StatusCompleted) {
			return httperr.ErrConflict("payment_already_used")
		}
		paid = p
	}

	if err := s.claimSlot(b.SlotID, "slot_already_booked"); err != nil {
		return err
	}

	b.ID = s.id()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	s.bookings[b.ID] = *b

	if b.PaymentID != "" {
		paid.BookingID = b.ID
		paid.UpdatedAt = b.CreatedAt
		s.payments[paid.PaymentID] = paid
	}
	return nil
}

func (s *Store) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	return &b, nil
}

func bookingOrder(a, b models.Booking) int {
	if c := strings.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.StartTime, b.StartTime)
}

func (s *Store) ListByUser(_ context.Context, userID uint) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Booking
	for _, b := range sortedValues(s.bookings, func(a, b models.Booking) int { return bookingOrder(b, a) }) {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) ListByMerchant(_ context.Context, merchantID uint, date string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Booking
	for _, b := range sortedValues(s.bookings, bookingOrder) {
		if b.MerchantID == merchantID && (date == "" || b.Date == date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) ApplyTransition(_ context.Context, id uint, from, to domain.Status) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	if b.Status != string(from) {
		return nil, httperr.ErrConflict("status_changed")
	}

	switch {
	case to == domain.StatusCancelled:
		if sl, ok := s.slots[b.SlotID]; ok {
			sl.IsBooked = false
			s.slots[b.SlotID] = sl
		}
		now := time.Now()
		b.CancelledAt = &now

	case from == domain.StatusCancelled:
		if err := s.claimSlot(b.SlotID, "slot_taken"); err != nil {
			return nil, err
		}
		b.CancelledAt = nil
	}

	b.Status = string(to)
	b.UpdatedAt = time.Now()
	s.bookings[id] = b
	return &b, nil
}

func (s *Store) CountByStatus(_ context.Context, merchantID uint, date string) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]int64{}
	for _, b := range s.bookings {
		if b.MerchantID == merchantID && (date == "" || b.Date == date) {
			out[b.Status]++
		}
	}
	return out, nil
}

func (s *Store) CountUniqueCustomers(_ context.Context, merchantID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[uint]struct{}{}
	for _, b := range s.bookings {
		if b.MerchantID == merchantID {
			seen[b.UserID] = struct{}{}
		}
	}
	return int64(len(seen)), nil
}

func (s *Store) CountAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.bookings)), nil
}
