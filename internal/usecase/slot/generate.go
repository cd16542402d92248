package slot

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type GenerateInput struct {
	MerchantID uint   `json:"merchant_id" validate:"required"`
	WorkerID   uint   `json:"worker_id"`
	Date       string `json:"date" validate:"required,date"`
}

// ======================================================
// USE CASE
// ======================================================

// GenerateSlots makes sure a merchant's day is cut into slots. A day is
// generated at most once; later calls return what is stored.
type GenerateSlots struct {
	merchants domain.MerchantRepository
	workers   domain.WorkerRepository
	slots     domain.SlotRepository
	window    domain.Window
	log       zerolog.Logger
}

func NewGenerateSlots(
	merchants domain.MerchantRepository,
	workers domain.WorkerRepository,
	slots domain.SlotRepository,
	window domain.Window,
	log zerolog.Logger,
) *GenerateSlots {
	return &GenerateSlots{
		merchants: merchants,
		workers:   workers,
		slots:     slots,
		window:    window,
		log:       log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GenerateSlots) Execute(
	ctx context.Context,
	in GenerateInput,
) ([]models.Slot, error) {

	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Merchant and worker
	// --------------------------------------------------
	merchant, err := uc.merchants.GetMerchant(ctx, in.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant.Status != string(domain.MerchantApproved) {
		return nil, httperr.ErrConflict("merchant_not_active")
	}

	if in.WorkerID != 0 {
		worker, err := uc.workers.GetWorker(ctx, in.MerchantID, in.WorkerID)
		if err != nil {
			return nil, err
		}
		if !worker.IsActive {
			return nil, httperr.ErrConflict("worker_inactive")
		}
	}

	// --------------------------------------------------
	// Already generated
	// --------------------------------------------------
	existing, err := uc.slots.ListForDay(ctx, in.MerchantID, in.WorkerID, in.Date)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	// --------------------------------------------------
	// Build and persist as one batch
	// --------------------------------------------------
	built, err := domain.BuildDaySlots(in.MerchantID, in.WorkerID, in.Date, uc.window)
	if err != nil {
		return nil, err
	}

	if err := uc.slots.CreateBatch(ctx, built); err != nil {
		if httperr.IsBusiness(err, "slots_exist") {
			return uc.slots.ListForDay(ctx, in.MerchantID, in.WorkerID, in.Date)
		}
		uc.log.Error().Err(err).
			Uint("merchant_id", in.MerchantID).
			Str("date", in.Date).
			Msg("slot generation failed")
		return nil, err
	}

	metrics.AddSlotsGenerated(len(built))
	uc.log.Info().
		Uint("merchant_id", in.MerchantID).
		Uint("worker_id", in.WorkerID).
		Str("date", in.Date).
		Int("slots", len(built)).
		Msg("slots generated")

	return built, nil
}
