package merchant

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type Profile struct {
	Merchant *models.Merchant `json:"merchant"`
	CoverURL string           `json:"cover_url,omitempty"`
	Services []models.Service `json:"services"`
	Workers  []models.Worker  `json:"workers"`
}

// Directory is the public view of approved merchants.
type Directory struct {
	merchants domain.MerchantRepository
	workers   domain.WorkerRepository
	objects   storage.ObjectStore
	log       zerolog.Logger
}

func NewDirectory(
	merchants domain.MerchantRepository,
	workers domain.WorkerRepository,
	objects storage.ObjectStore,
	log zerolog.Logger,
) *Directory {
	return &Directory{
		merchants: merchants,
		workers:   workers,
		objects:   objects,
		log:       log,
	}
}

func (uc *Directory) List(ctx context.Context) ([]models.Merchant, error) {
	return uc.merchants.ListMerchants(ctx, string(domain.MerchantApproved))
}

// ListByStatus is the admin view over applications.
func (uc *Directory) ListByStatus(
	ctx context.Context,
	session domain.Session,
	status string,
) ([]models.Merchant, error) {

	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	if status != "" {
		if _, err := domain.ParseMerchantStatus(status); err != nil {
			return nil, err
		}
	}
	return uc.merchants.ListMerchants(ctx, status)
}

// BySlug returns an approved merchant with its active services and workers.
func (uc *Directory) BySlug(ctx context.Context, slug string) (*Profile, error) {
	m, err := uc.merchants.GetMerchantBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if m.Status != string(domain.MerchantApproved) {
		return nil, httperr.ErrNotFound("merchant_not_found")
	}

	services, err := uc.merchants.ListServices(ctx, m.ID, true)
	if err != nil {
		return nil, err
	}

	all, err := uc.workers.ListWorkers(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	workers := make([]models.Worker, 0, len(all))
	for _, w := range all {
		if w.IsActive {
			workers = append(workers, w)
		}
	}

	p := &Profile{Merchant: m, Services: services, Workers: workers}
	if m.CoverImageKey != "" && uc.objects != nil {
		if url, err := uc.objects.URL(ctx, m.CoverImageKey); err == nil {
			p.CoverURL = url
		} else {
			uc.log.Warn().Err(err).Uint("merchant_id", m.ID).Msg("cover url failed")
		}
	}
	return p, nil
}
