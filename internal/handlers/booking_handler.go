package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/salon-booking/internal/usecase/booking"
	ucPayment "github.com/BruksfildServices01/salon-booking/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *ucBooking.CreateBooking
	list       *ucBooking.ListBookings
	transition *ucBooking.TransitionBooking
	checkout   *ucPayment.Checkout
	coins      *ucPayment.PayWithCoins
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	list *ucBooking.ListBookings,
	transition *ucBooking.TransitionBooking,
	checkout *ucPayment.Checkout,
	coins *ucPayment.PayWithCoins,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		list:       list,
		transition: transition,
		checkout:   checkout,
		coins:      coins,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CheckoutRequest struct {
	Method string `json:"method" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req ucBooking.CreateInput
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.create.Execute(c.Request.Context(), middleware.Session(c), req)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, booking)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	bookings, err := h.list.ForCustomer(c.Request.Context(), middleware.Session(c))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.BookingList(bookings))
}

func (h *BookingHandler) Checkout(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.checkout.Execute(c.Request.Context(), middleware.Session(c), ucPayment.CheckoutInput{
		BookingID:      id,
		Method:         req.Method,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *BookingHandler) PayWithCoins(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.coins.Execute(c.Request.Context(), middleware.Session(c), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// MERCHANT
// ======================================================

func (h *BookingHandler) ListForMerchant(c *gin.Context) {
	bookings, err := h.list.ForMerchant(c.Request.Context(), middleware.Session(c), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.List(c, dto.BookingList(bookings))
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.transition.Execute(c.Request.Context(), middleware.Session(c), id, req.Status)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, booking)
}
