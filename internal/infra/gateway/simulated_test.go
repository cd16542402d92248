package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-booking/internal/domain/payment"
)

func TestSimulated_RoundTrip(t *testing.T) {
	g := NewSimulated(payment.StatusCompleted)

	order, err := g.CreateOrder(context.Background(), payment.OrderRequest{
		ExternalReference: "pay-1",
		Amount:            1000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ProviderPaymentID)

	got, err := g.FetchPayment(context.Background(), order.ProviderPaymentID)
	require.NoError(t, err)
	assert.Equal(t, "pay-1", got.ExternalReference)
	assert.Equal(t, payment.StatusCompleted, got.Status)

	g.Settle(order.ProviderPaymentID, payment.StatusFailed)
	got, _ = g.FetchPayment(context.Background(), order.ProviderPaymentID)
	assert.Equal(t, payment.StatusFailed, got.Status)
}

func TestSimulated_UnknownPayment(t *testing.T) {
	g := NewSimulated(payment.StatusCompleted)
	_, err := g.FetchPayment(context.Background(), "nope")
	assert.Error(t, err)
}
