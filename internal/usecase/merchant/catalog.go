package merchant

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

type WorkerInput struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	Specialty string `json:"specialty" validate:"max=100"`
}

type ServiceInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=255"`
	DurationMin int    `json:"duration_min" validate:"required,gt=0,lte=600"`
	Price       int64  `json:"price" validate:"gte=0"`
}

// ServiceUpdate replaces a service's fields. Deactivated services stay
// attached to past bookings but are no longer offered.
type ServiceUpdate struct {
	ServiceInput
	Active *bool `json:"active"`
}

// Catalog manages a merchant's workers and services.
type Catalog struct {
	merchants domain.MerchantRepository
	workers   domain.WorkerRepository
}

func NewCatalog(
	merchants domain.MerchantRepository,
	workers domain.WorkerRepository,
) *Catalog {
	return &Catalog{merchants: merchants, workers: workers}
}

// --------------------------------------------------
// Workers
// --------------------------------------------------

func (uc *Catalog) AddWorker(
	ctx context.Context,
	session domain.Session,
	in WorkerInput,
) (*models.Worker, error) {

	if err := session.RequireMerchant(session.MerchantID); err != nil {
		return nil, err
	}
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	w := &models.Worker{
		MerchantID: session.MerchantID,
		Name:       strings.TrimSpace(in.Name),
		Specialty:  in.Specialty,
		IsActive:   true,
	}
	if err := uc.workers.CreateWorker(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (uc *Catalog) ListWorkers(
	ctx context.Context,
	merchantID uint,
) ([]models.Worker, error) {
	return uc.workers.ListWorkers(ctx, merchantID)
}

func (uc *Catalog) SetWorkerActive(
	ctx context.Context,
	session domain.Session,
	workerID uint,
	active bool,
) (*models.Worker, error) {

	if err := session.RequireMerchant(session.MerchantID); err != nil {
		return nil, err
	}

	w, err := uc.workers.GetWorker(ctx, session.MerchantID, workerID)
	if err != nil {
		return nil, err
	}

	w.IsActive = active
	if err := uc.workers.UpdateWorker(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (uc *Catalog) AddService(
	ctx context.Context,
	session domain.Session,
	in ServiceInput,
) (*models.Service, error) {

	if err := session.RequireMerchant(session.MerchantID); err != nil {
		return nil, err
	}
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	s := &models.Service{
		MerchantID:  session.MerchantID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		DurationMin: in.DurationMin,
		Price:       in.Price,
		Active:      true,
	}
	if err := uc.merchants.CreateService(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *Catalog) UpdateService(
	ctx context.Context,
	session domain.Session,
	serviceID uint,
	in ServiceUpdate,
) (*models.Service, error) {

	if err := session.RequireMerchant(session.MerchantID); err != nil {
		return nil, err
	}
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	s, err := uc.merchants.GetService(ctx, session.MerchantID, serviceID)
	if err != nil {
		return nil, err
	}

	s.Name = strings.TrimSpace(in.Name)
	s.Description = in.Description
	s.DurationMin = in.DurationMin
	s.Price = in.Price
	if in.Active != nil {
		s.Active = *in.Active
	}

	if err := uc.merchants.UpdateService(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *Catalog) ListServices(
	ctx context.Context,
	merchantID uint,
	activeOnly bool,
) ([]models.Service, error) {
	return uc.merchants.ListServices(ctx, merchantID, activeOnly)
}
