package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucMerchant "github.com/BruksfildServices01/salon-booking/internal/usecase/merchant"
)

// AdminHandler reviews merchant applications.
type AdminHandler struct {
	directory *ucMerchant.Directory
	review    *ucMerchant.Review
}

func NewAdminHandler(directory *ucMerchant.Directory, review *ucMerchant.Review) *AdminHandler {
	return &AdminHandler{directory: directory, review: review}
}

func (h *AdminHandler) ListMerchants(c *gin.Context) {
	merchants, err := h.directory.ListByStatus(c.Request.Context(), middleware.Session(c), c.Query("status"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, merchants)
}

func (h *AdminHandler) Review(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ucMerchant.ReviewInput
	if !bindJSON(c, &req) {
		return
	}

	m, err := h.review.Execute(c.Request.Context(), middleware.Session(c), id, req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, m)
}
