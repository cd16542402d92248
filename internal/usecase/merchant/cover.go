package merchant

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/infra/storage"
	"github.com/BruksfildServices01/salon-booking/internal/media"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// UploadCover stores a merchant's cover picture as webp.
type UploadCover struct {
	merchants domain.MerchantRepository
	objects   storage.ObjectStore
	maxWidth  int
}

func NewUploadCover(
	merchants domain.MerchantRepository,
	objects storage.ObjectStore,
) *UploadCover {
	return &UploadCover{
		merchants: merchants,
		objects:   objects,
		maxWidth:  media.DefaultMaxWidth,
	}
}

func (uc *UploadCover) Execute(
	ctx context.Context,
	session domain.Session,
	merchantID uint,
	image io.Reader,
) (*models.Merchant, error) {

	if err := session.RequireMerchant(merchantID); err != nil {
		return nil, err
	}

	m, err := uc.merchants.GetMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	body, err := media.ToWebP(image, uc.maxWidth)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("merchants/%d/cover-%s.webp", m.ID, uuid.NewString())
	if err := uc.objects.Put(ctx, key, media.ContentTypeWebP, body); err != nil {
		return nil, err
	}

	m.CoverImageKey = key
	if err := uc.merchants.UpdateMerchant(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
