package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFromError_StatusByKind(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation("invalid_date"), http.StatusBadRequest, "invalid_date"},
		{ErrNotFound("slot_not_found"), http.StatusNotFound, "slot_not_found"},
		{ErrConflict("slot_already_booked"), http.StatusConflict, "slot_already_booked"},
		{ErrPayment("insufficient_coins"), http.StatusPaymentRequired, "insufficient_coins"},
		{ErrForbidden("forbidden"), http.StatusForbidden, "forbidden"},
		{ErrUpstream("payment_provider_error"), http.StatusInternalServerError, "payment_provider_error"},
		{fmt.Errorf("wrapped: %w", ErrConflict("slot_taken")), http.StatusConflict, "slot_taken"},
		{errors.New("db gone"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		FromError(c, tt.err)

		assert.Equal(t, tt.status, w.Code, tt.code)
		var body HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.code, body.Code)
		assert.NotEmpty(t, body.Message)
	}
}

func TestKindOfAndCodeOf(t *testing.T) {
	assert.Equal(t, KindUpstream, KindOf(errors.New("x")))
	assert.Equal(t, KindValidation, KindOf(ErrBusiness("bad")))
	assert.Equal(t, "bad", CodeOf(ErrBusiness("bad")))
	assert.Equal(t, "", CodeOf(errors.New("x")))
	assert.False(t, IsBusiness(errors.New("bad"), "bad"))
}
