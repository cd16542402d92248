package slot

import (
	"context"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// CHECK
// ======================================================

type CheckExtension struct {
	slots  domain.SlotRepository
	window domain.Window
}

func NewCheckExtension(
	slots domain.SlotRepository,
	window domain.Window,
) *CheckExtension {
	return &CheckExtension{
		slots:  slots,
		window: window,
	}
}

// Execute runs the extension check for a slot the caller owns and returns
// it resolved.
func (uc *CheckExtension) Execute(
	ctx context.Context,
	session domain.Session,
	slotID uint,
	candidateEnd string,
) (*domain.ExtensionCheck, []models.Slot, error) {

	slot, err := uc.slots.GetSlot(ctx, slotID)
	if err != nil {
		return nil, nil, err
	}
	if err := session.RequireMerchant(slot.MerchantID); err != nil {
		return nil, nil, err
	}
	if slot.AbsorbedBy != 0 {
		return nil, nil, httperr.ErrConflict("slot_absorbed")
	}

	if _, err := domain.ParseClock(candidateEnd); err != nil {
		return nil, nil, err
	}
	if candidateEnd <= slot.StartTime {
		return nil, nil, httperr.ErrValidation("end_before_start")
	}
	if candidateEnd > uc.window.End {
		return nil, nil, httperr.ErrValidation("outside_working_hours")
	}

	check := domain.NewExtensionCheck(*slot)
	if err := check.Begin(candidateEnd); err != nil {
		return nil, nil, err
	}

	siblings, err := uc.slots.ListSiblings(ctx, slot)
	if err != nil {
		return nil, nil, err
	}

	state := check.Resolve(siblings)
	metrics.IncExtensionCheck(string(state))

	return check, siblings, nil
}

// ======================================================
// EXTEND
// ======================================================

type ExtendSlot struct {
	check *CheckExtension
	slots domain.SlotRepository
	log   zerolog.Logger
}

func NewExtendSlot(
	check *CheckExtension,
	slots domain.SlotRepository,
	log zerolog.Logger,
) *ExtendSlot {
	return &ExtendSlot{
		check: check,
		slots: slots,
		log:   log,
	}
}

// Execute grows a slot to candidateEnd. Free siblings inside the new range
// are absorbed into it and stop being offered on their own. The write
// re-checks each sibling, so one booked or absorbed after the check fails
// the call with "extension_conflict".
func (uc *ExtendSlot) Execute(
	ctx context.Context,
	session domain.Session,
	slotID uint,
	candidateEnd string,
) (*models.Slot, error) {

	check, siblings, err := uc.check.Execute(ctx, session, slotID, candidateEnd)
	if err != nil {
		return nil, err
	}

	if candidateEnd <= check.Slot.EndTime {
		return nil, httperr.ErrValidation("extension_not_longer")
	}
	if check.State == domain.ExtensionConflicted {
		return nil, httperr.ErrConflict("extension_conflict")
	}

	covered := check.Covered(siblings)
	absorb := make([]uint, 0, len(covered))
	for _, s := range covered {
		absorb = append(absorb, s.ID)
	}

	duration, err := domain.DurationBetween(check.Slot.StartTime, candidateEnd)
	if err != nil {
		return nil, err
	}

	extended, err := uc.slots.Extend(ctx, slotID, candidateEnd, duration, absorb)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Uint("slot_id", slotID).
		Str("end_time", candidateEnd).
		Int("absorbed", len(absorb)).
		Msg("slot extended")

	return extended, nil
}
