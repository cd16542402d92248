package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLister interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	session := middleware.Session(c)
	if err := session.RequireMerchant(session.MerchantID); err != nil {
		httperr.FromError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		MerchantID: session.MerchantID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Page:       page,
		Limit:      limit,
	}

	// --------------------------------------------------
	// Optional date range
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Invalid from date.")
			return
		}
		f.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Invalid to date.")
			return
		}
		f.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	httpresp.Page(c, logs, page, limit, total)
}
