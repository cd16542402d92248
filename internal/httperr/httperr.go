package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var kindStatus = map[Kind]int{
	KindValidation: http.StatusBadRequest,
	KindNotFound:   http.StatusNotFound,
	KindConflict:   http.StatusConflict,
	KindPayment:    http.StatusPaymentRequired,
	KindForbidden:  http.StatusForbidden,
	KindUpstream:   http.StatusInternalServerError,
}

// FromError writes the response for an error returned by a use case.
func FromError(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Unexpected error.")
		return
	}

	status, ok := kindStatus[be.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	Write(c, status, be.Code, messageFor(be))
}

func messageFor(be BusinessError) string {
	if msg, ok := messages[be.Code]; ok {
		return msg
	}
	switch be.Kind {
	case KindValidation:
		return "Invalid request."
	case KindNotFound:
		return "Resource not found."
	case KindConflict:
		return "Request conflicts with current state."
	case KindPayment:
		return "Payment could not be completed."
	case KindForbidden:
		return "Not allowed."
	}
	return "Upstream service failed."
}

var messages = map[string]string{
	"slot_not_found":         "Slot not found.",
	"slot_already_booked":    "Slot is already booked.",
	"slot_taken":             "Slot was booked by someone else.",
	"extension_conflict":     "Extension overlaps a booked slot.",
	"booking_not_found":      "Booking not found.",
	"invalid_transition":     "Booking cannot move to that status.",
	"merchant_not_found":     "Salon not found.",
	"merchant_not_active":    "Salon is not accepting bookings.",
	"insufficient_coins":     "Insufficient coins.",
	"payment_failed":         "Payment failed.",
	"payment_not_found":      "Payment not found.",
	"payment_provider_error": "Payment provider is unavailable.",
	"slug_already_exists":    "Slug already in use.",
}
