package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucDashboard "github.com/BruksfildServices01/salon-booking/internal/usecase/dashboard"
)

type DashboardHandler struct {
	dashboard *ucDashboard.Dashboard
}

func NewDashboardHandler(dashboard *ucDashboard.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Merchant(c *gin.Context) {
	summary, err := h.dashboard.Merchant(c.Request.Context(), middleware.Session(c), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, summary)
}

func (h *DashboardHandler) Admin(c *gin.Context) {
	summary, err := h.dashboard.Admin(c.Request.Context(), middleware.Session(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, summary)
}
