package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	ucPayment "github.com/BruksfildServices01/salon-booking/internal/usecase/payment"
)

type PaymentHandler struct {
	reconcile     *ucPayment.Reconcile
	notifications *ucPayment.HandleNotification
	log           zerolog.Logger
}

func NewPaymentHandler(
	reconcile *ucPayment.Reconcile,
	notifications *ucPayment.HandleNotification,
	log zerolog.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		reconcile:     reconcile,
		notifications: notifications,
		log:           log,
	}
}

// Reconcile is the return leg of the provider redirect.
func (h *PaymentHandler) Reconcile(c *gin.Context) {
	res, err := h.reconcile.Execute(c.Request.Context(), c.Param("provider_id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.OK(c, res)
}

// Webhook accepts provider notifications in the JSON body or, for the older
// IPN style, in ?type=&data.id= query parameters.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var n ucPayment.Notification
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&n); err != nil {
			httperr.BadRequest(c, "invalid_notification", "Invalid notification body.")
			return
		}
	}
	if n.Type == "" {
		n.Type = c.Query("type")
	}
	if n.Data.ID == "" {
		n.Data.ID = ucPayment.FlexibleID(c.Query("data.id"))
	}

	processed, err := h.notifications.Execute(c.Request.Context(), n)
	if err != nil {
		// Business outcomes are final. Only upstream and unexpected failures
		// get a 5xx so the provider redelivers.
		var be httperr.BusinessError
		if !errors.As(err, &be) || be.Kind == httperr.KindUpstream || be.Kind == httperr.KindValidation {
			httperr.FromError(c, err)
			return
		}
		h.log.Info().Str("provider_payment_id", string(n.Data.ID)).Str("outcome", be.Code).Msg("notification settled")
		c.JSON(http.StatusOK, gin.H{"processed": processed, "outcome": be.Code})
		return
	}

	c.JSON(http.StatusOK, gin.H{"processed": processed})
}
