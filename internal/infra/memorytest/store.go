// Package memorytest holds map-backed repositories for tests. Conditional
// writes follow the same rules as the SQL ones.
package memorytest

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type Store struct {
	mu sync.Mutex

	nextID uint

	merchants map[uint]models.Merchant
	services  map[uint]models.Service
	workers   map[uint]models.Worker
	users     map[uint]models.User
	slots     map[uint]models.Slot
	bookings  map[uint]models.Booking
	payments  map[string]models.Payment
}

func NewStore() *Store {
	return &Store{
		merchants: map[uint]models.Merchant{},
		services:  map[uint]models.Service{},
		workers:   map[uint]models.Worker{},
		users:     map[uint]models.User{},
		slots:     map[uint]models.Slot{},
		bookings:  map[uint]models.Booking{},
		payments:  map[string]models.Payment{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func sortedValues[K comparable, V any](m map[K]V, less func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, less)
	return out
}

// ======================================================
// Merchants and services
// ======================================================

func (s *Store) GetMerchant(_ context.Context, id uint) (*models.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.merchants[id]
	if !ok {
		return nil, httperr.ErrNotFound("merchant_not_found")
	}
	return &m, nil
}

func (s *Store) GetMerchantBySlug(_ context.Context, slug string) (*models.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.merchants {
		if m.Slug == slug {
			return &m, nil
		}
	}
	return nil, httperr.ErrNotFound("merchant_not_found")
}

func (s *Store) ListMerchants(_ context.Context, status string) ([]models.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Merchant
	for _, m := range sortedValues(s.merchants, func(a, b models.Merchant) int { return int(a.ID) - int(b.ID) }) {
		if status == "" || m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Store) CreateMerchant(_ context.Context, m *models.Merchant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertMerchant(m)
}

func (s *Store) CreateForOwner(_ context.Context, m *models.Merchant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[m.OwnerID]; !ok {
		return httperr.ErrNotFound("user_not_found")
	}
	if err := s.insertMerchant(m); err != nil {
		return err
	}
	return s.attach(m.OwnerID, m.ID)
}

func (s *Store) insertMerchant(m *models.Merchant) error {
	for _, other := range s.merchants {
		if other.Slug == m.Slug {
			return httperr.ErrConflict("slug_already_exists")
		}
	}
	if m.Status == "" {
		m.Status = string(domain.MerchantPending)
	}
	m.ID = s.id()
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	s.merchants[m.ID] = *m
	return nil
}

func (s *Store) UpdateMerchant(_ context.Context, m *models.Merchant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.merchants[m.ID]; !ok {
		return httperr.ErrNotFound("merchant_not_found")
	}
	m.UpdatedAt = time.Now()
	s.merchants[m.ID] = *m
	return nil
}

func (s *Store) CountMerchantsByStatus(_ context.Context) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]int64{}
	for _, m := range s.merchants {
		out[m.Status]++
	}
	return out, nil
}

func (s *Store) GetService(_ context.Context, merchantID, serviceID uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.MerchantID != merchantID {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return &svc, nil
}

func (s *Store) ListServices(_ context.Context, merchantID uint, activeOnly bool) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Service
	for _, svc := range sortedValues(s.services, func(a, b models.Service) int { return int(a.ID) - int(b.ID) }) {
		if svc.MerchantID != merchantID || (activeOnly && !svc.Active) {
			continue
		}
		out = append(out, svc)
	}
	return out, nil
}

func (s *Store) CreateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.id()
	svc.CreatedAt = time.Now()
	s.services[svc.ID] = *svc
	return nil
}

func (s *Store) UpdateService(_ context.Context, svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.services[svc.ID]; !ok {
		return httperr.ErrNotFound("service_not_found")
	}
	svc.UpdatedAt = time.Now()
	s.services[svc.ID] = *svc
	return nil
}

// ======================================================
// Workers
// ======================================================

func (s *Store) GetWorker(_ context.Context, merchantID, workerID uint) (*models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.workers[workerID]
	if !ok || w.MerchantID != merchantID {
		return nil, httperr.ErrNotFound("worker_not_found")
	}
	return &w, nil
}

func (s *Store) ListWorkers(_ context.Context, merchantID uint) ([]models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Worker
	for _, w := range sortedValues(s.workers, func(a, b models.Worker) int { return int(a.ID) - int(b.ID) }) {
		if w.MerchantID == merchantID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *Store) CreateWorker(_ context.Context, w *models.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w.ID = s.id()
	w.CreatedAt = time.Now()
	s.workers[w.ID] = *w
	return nil
}

func (s *Store) UpdateWorker(_ context.Context, w *models.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.workers[w.ID]; !ok {
		return httperr.ErrNotFound("worker_not_found")
	}
	w.UpdatedAt = time.Now()
	s.workers[w.ID] = *w
	return nil
}

// ======================================================
// Users
// ======================================================

func (s *Store) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, httperr.ErrNotFound("user_not_found")
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.users {
		if strings.EqualFold(other.Email, u.Email) {
			return httperr.ErrConflict("email_already_exists")
		}
	}
	if u.Role == "" {
		u.Role = domain.RoleCustomer
	}
	u.ID = s.id()
	u.CreatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) AttachMerchant(_ context.Context, userID, merchantID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attach(userID, merchantID)
}

func (s *Store) attach(userID, merchantID uint) error {
	u, ok := s.users[userID]
	if !ok {
		return httperr.ErrNotFound("user_not_found")
	}
	u.MerchantID = &merchantID
	u.Role = domain.RoleMerchant
	s.users[userID] = u
	return nil
}

func (s *Store) CountCustomers(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, u := range s.users {
		if u.Role == domain.RoleCustomer {
			n++
		}
	}
	return n, nil
}

// SetCoins overwrites a user's balance.
func (s *Store) SetCoins(userID uint, coins int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.Coins = coins
		s.users[userID] = u
	}
}

// ======================================================
// Compile-time checks
// ======================================================

var (
	_ domain.MerchantRepository = (*Store)(nil)
	_ domain.WorkerRepository   = (*Store)(nil)
	_ domain.UserRepository     = (*Store)(nil)
	_ domain.SlotRepository     = (*Store)(nil)
	_ domain.BookingRepository  = (*Store)(nil)
	_ payment.Repository        = (*Store)(nil)
)
