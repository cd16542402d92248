package booking

import "github.com/BruksfildServices01/salon-booking/internal/httperr"

const (
	RoleCustomer = "customer"
	RoleMerchant = "merchant"
	RoleAdmin    = "admin"
)

// Session identifies the caller of a use case. It is built from the bearer
// token by the HTTP layer and passed down explicitly.
type Session struct {
	UserID     uint
	Role       string
	MerchantID uint
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s Session) IsMerchantOf(merchantID uint) bool {
	return s.Role == RoleMerchant && s.MerchantID != 0 && s.MerchantID == merchantID
}

func (s Session) Authenticated() bool {
	return s.UserID != 0
}

// RequireMerchant fails unless the caller owns merchantID. Admins pass.
func (s Session) RequireMerchant(merchantID uint) error {
	if s.IsAdmin() || s.IsMerchantOf(merchantID) {
		return nil
	}
	return httperr.ErrForbidden("forbidden")
}

func (s Session) RequireAdmin() error {
	if s.IsAdmin() {
		return nil
	}
	return httperr.ErrForbidden("forbidden")
}
