package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/infra/idempotency"
)

const notificationTTL = 24 * time.Hour

// FlexibleID accepts both JSON numbers and strings.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

// Notification is the provider's webhook body.
type Notification struct {
	ID     FlexibleID `json:"id"`
	Type   string     `json:"type"`
	Action string     `json:"action"`
	Data   struct {
		ID FlexibleID `json:"id"`
	} `json:"data"`
}

func (n Notification) dedupeKey() string {
	if n.ID != "" {
		return "webhook:" + string(n.ID)
	}
	return "webhook:" + string(n.Data.ID) + ":" + n.Action
}

// HandleNotification reconciles the payment a webhook points at. Repeated
// deliveries of the same notification are acknowledged without work.
type HandleNotification struct {
	reconcile *Reconcile
	seen      idempotency.Store
	log       zerolog.Logger
}

func NewHandleNotification(
	reconcile *Reconcile,
	seen idempotency.Store,
	log zerolog.Logger,
) *HandleNotification {
	return &HandleNotification{
		reconcile: reconcile,
		seen:      seen,
		log:       log,
	}
}

// Execute reports whether the notification was processed now.
func (uc *HandleNotification) Execute(
	ctx context.Context,
	n Notification,
) (bool, error) {

	if n.Type != "payment" {
		return false, nil
	}
	if n.Data.ID == "" {
		return false, httperr.ErrValidation("invalid_notification")
	}

	key := n.dedupeKey()
	fresh, err := uc.seen.Reserve(ctx, key, notificationTTL)
	if err != nil {
		return false, err
	}
	if !fresh {
		uc.log.Debug().Str("key", key).Msg("duplicate notification")
		return false, nil
	}

	if _, err := uc.reconcile.Execute(ctx, string(n.Data.ID)); err != nil {
		if httperr.KindOf(err) == httperr.KindUpstream {
			_ = uc.seen.Release(ctx, key)
		}
		return true, err
	}

	return true, nil
}
