package handlers

import (
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	ucMerchant "github.com/BruksfildServices01/salon-booking/internal/usecase/merchant"
	ucSlot "github.com/BruksfildServices01/salon-booking/internal/usecase/slot"
)

// PublicHandler serves the unauthenticated salon browsing endpoints.
type PublicHandler struct {
	directory    *ucMerchant.Directory
	availability *ucSlot.GetAvailability
}

func NewPublicHandler(
	directory *ucMerchant.Directory,
	availability *ucSlot.GetAvailability,
) *PublicHandler {
	return &PublicHandler{
		directory:    directory,
		availability: availability,
	}
}

func (h *PublicHandler) ListSalons(c *gin.Context) {
	merchants, err := h.directory.List(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, merchants)
}

func (h *PublicHandler) GetSalon(c *gin.Context) {
	profile, err := h.directory.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, profile)
}

// Availability lists the free slots of a salon for ?date=, generating the
// day on first access. ?worker_id= narrows it to one worker.
func (h *PublicHandler) Availability(c *gin.Context) {
	workerID, ok := queryID(c, "worker_id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	profile, err := h.directory.BySlug(ctx, c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	free, err := h.availability.Execute(ctx, ucSlot.GenerateInput{
		MerchantID: profile.Merchant.ID,
		WorkerID:   workerID,
		Date:       c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slices.Collect(free))
}
