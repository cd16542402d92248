package memorytest

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

func (s *Store) CreatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[p.PaymentID]; ok {
		return httperr.ErrConflict("payment_exists")
	}
	if p.Status == "" {
		p.Status = string(payment.StatusPending)
	}
	p.ID = s.id()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.payments[p.PaymentID] = *p
	return nil
}

func (s *Store) GetPayment(_ context.Context, paymentID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, httperr.ErrNotFound("payment_not_found")
	}
	return &p, nil
}

func (s *Store) GetPaymentByProviderID(_ context.Context, providerPaymentID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.payments {
		if p.ProviderPaymentID != "" && p.ProviderPaymentID == providerPaymentID {
			return &p, nil
		}
	}
	return nil, httperr.ErrNotFound("payment_not_found")
}

func (s *Store) UpdatePayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.payments[p.PaymentID]; !ok {
		return httperr.ErrNotFound("payment_not_found")
	}
	p.UpdatedAt = time.Now()
	s.payments[p.PaymentID] = *p
	return nil
}

func (s *Store) MarkFailed(_ context.Context, paymentID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok || p.Status != string(payment.StatusPending) {
		return nil
	}
	p.Status = string(payment.StatusFailed)
	p.FailureReason = reason
	s.payments[paymentID] = p
	return nil
}

func (s *Store) Complete(_ context.Context, paymentID, providerPaymentID string) (*models.Payment, *models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil, nil, httperr.ErrNotFound("payment_not_found")
	}
	b, ok := s.bookings[p.BookingID]
	if !ok {
		return nil, nil, httperr.ErrNotFound("booking_not_found")
	}

	if p.Status == string(payment.StatusCompleted) {
		return &p, &b, nil
	}

	p.Status = string(payment.StatusCompleted)
	p.FailureReason = ""
	if providerPaymentID != "" {
		p.ProviderPaymentID = providerPaymentID
	}
	s.payments[paymentID] = p

	if b.Status == string(domain.StatusCancelled) {
		return &p, &b, httperr.ErrConflict("booking_cancelled")
	}

	b.Status = string(domain.StatusConfirmed)
	b.PaymentID = p.PaymentID
	s.bookings[b.ID] = b
	return &p, &b, nil
}

func (s *Store) SettleWithCoins(_ context.Context, p *models.Payment) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[p.UserID]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	if u.Coins < p.CoinsUsed {
		return nil, httperr.ErrPayment("insufficient_coins")
	}

	b, ok := s.bookings[p.BookingID]
	if !ok {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	if b.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrConflict("booking_cancelled")
	}

	u.Coins -= p.CoinsUsed
	s.users[u.ID] = u

	p.Status = string(payment.StatusCompleted)
	p.UpdatedAt = time.Now()
	s.payments[p.PaymentID] = *p

	b.Status = string(domain.StatusConfirmed)
	b.PaymentID = p.PaymentID
	s.bookings[b.ID] = b
	return &b, nil
}
