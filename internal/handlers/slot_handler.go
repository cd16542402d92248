package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucSlot "github.com/BruksfildServices01/salon-booking/internal/usecase/slot"
)

type SlotHandler struct {
	generate *ucSlot.GenerateSlots
	check    *ucSlot.CheckExtension
	extend   *ucSlot.ExtendSlot
}

func NewSlotHandler(
	generate *ucSlot.GenerateSlots,
	check *ucSlot.CheckExtension,
	extend *ucSlot.ExtendSlot,
) *SlotHandler {
	return &SlotHandler{
		generate: generate,
		check:    check,
		extend:   extend,
	}
}

type GenerateSlotsRequest struct {
	WorkerID uint   `json:"worker_id"`
	Date     string `json:"date" binding:"required"`
}

type ExtendSlotRequest struct {
	End string `json:"end" binding:"required"`
}

func (h *SlotHandler) Generate(c *gin.Context) {
	var req GenerateSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	session := middleware.Session(c)
	if err := session.RequireMerchant(session.MerchantID); err != nil {
		httperr.FromError(c, err)
		return
	}

	slots, err := h.generate.Execute(c.Request.Context(), ucSlot.GenerateInput{
		MerchantID: session.MerchantID,
		WorkerID:   req.WorkerID,
		Date:       req.Date,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// Extension reports whether the slot can grow to ?end= without writing.
func (h *SlotHandler) Extension(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	check, _, err := h.check.Execute(c.Request.Context(), middleware.Session(c), id, c.Query("end"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slot_id":       check.Slot.ID,
		"current_end":   check.Slot.EndTime,
		"candidate_end": check.CandidateEnd,
		"state":         check.State,
		"conflicts":     check.Conflicts,
	})
}

func (h *SlotHandler) Extend(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ExtendSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.extend.Execute(c.Request.Context(), middleware.Session(c), id, req.End)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, slot)
}
