package slot

import (
	"context"
	"iter"
	"slices"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// GetAvailability lists the free slots of a day, generating the day first
// when needed.
type GetAvailability struct {
	generate *GenerateSlots
	slots    domain.SlotRepository
}

func NewGetAvailability(
	generate *GenerateSlots,
	slots domain.SlotRepository,
) *GetAvailability {
	return &GetAvailability{
		generate: generate,
		slots:    slots,
	}
}

// Execute yields unbooked slots ordered by start time.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GenerateInput,
) (iter.Seq[models.Slot], error) {

	if _, err := uc.generate.Execute(ctx, in); err != nil {
		return nil, err
	}

	free, err := uc.slots.ListAvailable(ctx, in.MerchantID, in.WorkerID, in.Date)
	if err != nil {
		return nil, err
	}

	return slices.Values(free), nil
}
