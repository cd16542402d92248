package merchant

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ReviewInput struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// Review is the admin decision on a pending application.
type Review struct {
	merchants domain.MerchantRepository
	audit     *audit.Dispatcher
	log       zerolog.Logger
}

func NewReview(
	merchants domain.MerchantRepository,
	audit *audit.Dispatcher,
	log zerolog.Logger,
) *Review {
	return &Review{merchants: merchants, audit: audit, log: log}
}

func (uc *Review) Execute(
	ctx context.Context,
	session domain.Session,
	merchantID uint,
	in ReviewInput,
) (*models.Merchant, error) {

	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}

	m, err := uc.merchants.GetMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	next, err := domain.ReviewOutcome(domain.MerchantStatus(m.Status), in.Approve)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.Status = string(next)
	m.ReviewNote = in.Note
	m.ReviewedAt = &now

	if err := uc.merchants.UpdateMerchant(ctx, m); err != nil {
		return nil, err
	}

	uc.log.Info().Uint("merchant_id", m.ID).Str("status", m.Status).Msg("merchant reviewed")
	uc.audit.Dispatch(audit.Event{
		MerchantID: m.ID,
		UserID:     audit.Uint(session.UserID),
		ActorRole:  session.Role,
		Action:     "merchant_" + m.Status,
		Entity:     "merchant",
		EntityID:   audit.Uint(m.ID),
		Metadata:   map[string]any{"note": in.Note},
	})

	return m, nil
}
