package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusCancelled, StatusConfirmed, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
			continue
		}
		assert.True(t, httperr.IsBusiness(err, "invalid_transition"), "%s -> %s", tt.from, tt.to)
		assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("confirmed")
	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, s)

	_, err = ParseStatus("done")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusPending, InitialStatus(false))
	assert.Equal(t, StatusConfirmed, InitialStatus(true))
}

func TestReviewOutcome(t *testing.T) {
	got, err := ReviewOutcome(MerchantPending, true)
	assert.NoError(t, err)
	assert.Equal(t, MerchantApproved, got)

	got, err = ReviewOutcome(MerchantPending, false)
	assert.NoError(t, err)
	assert.Equal(t, MerchantRejected, got)

	_, err = ReviewOutcome(MerchantApproved, false)
	assert.True(t, httperr.IsBusiness(err, "application_already_reviewed"))
}

func TestSession(t *testing.T) {
	owner := Session{UserID: 1, Role: RoleMerchant, MerchantID: 4}
	assert.NoError(t, owner.RequireMerchant(4))
	assert.Error(t, owner.RequireMerchant(5))
	assert.Error(t, owner.RequireAdmin())

	admin := Session{UserID: 2, Role: RoleAdmin}
	assert.NoError(t, admin.RequireMerchant(5))
	assert.NoError(t, admin.RequireAdmin())

	assert.False(t, Session{}.Authenticated())
	assert.False(t, Session{UserID: 3, Role: RoleMerchant}.IsMerchantOf(0))
}
