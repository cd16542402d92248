package merchant

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

type ApplyInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Slug        string `json:"slug" validate:"required,slug,max=100"`
	Phone       string `json:"phone" validate:"max=20"`
	Address     string `json:"address" validate:"max=255"`
	Description string `json:"description"`
	Timezone    string `json:"timezone"`
}

// Apply registers a merchant application owned by the caller. It stays
// pending until an admin reviews it.
type Apply struct {
	merchants domain.MerchantRepository
	log       zerolog.Logger
}

func NewApply(
	merchants domain.MerchantRepository,
	log zerolog.Logger,
) *Apply {
	return &Apply{merchants: merchants, log: log}
}

func (uc *Apply) Execute(
	ctx context.Context,
	session domain.Session,
	in ApplyInput,
) (*models.Merchant, error) {

	if !session.Authenticated() {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if session.MerchantID != 0 || session.IsAdmin() {
		return nil, httperr.ErrConflict("already_merchant")
	}

	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if err := validators.Struct(in); err != nil {
		return nil, err
	}

	tz := in.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		return nil, httperr.ErrValidation("invalid_timezone")
	}

	m := &models.Merchant{
		OwnerID:     session.UserID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        in.Slug,
		Phone:       in.Phone,
		Address:     in.Address,
		Description: in.Description,
		Timezone:    tz,
		Status:      string(domain.MerchantPending),
	}
	if err := uc.merchants.CreateForOwner(ctx, m); err != nil {
		return nil, err
	}

	uc.log.Info().Uint("merchant_id", m.ID).Str("slug", m.Slug).Msg("merchant application received")
	return m, nil
}
