package booking

import "github.com/BruksfildServices01/salon-booking/internal/httperr"

// ===============================
// Merchant application status
// ===============================

type MerchantStatus string

const (
	MerchantPending  MerchantStatus = "pending"
	MerchantApproved MerchantStatus = "approved"
	MerchantRejected MerchantStatus = "rejected"
)

func ParseMerchantStatus(s string) (MerchantStatus, error) {
	switch MerchantStatus(s) {
	case MerchantPending, MerchantApproved, MerchantRejected:
		return MerchantStatus(s), nil
	}
	return "", httperr.ErrValidation("invalid_merchant_status")
}

// ReviewOutcome is the status an application moves to after review. Only
// pending applications can be reviewed.
func ReviewOutcome(current MerchantStatus, approve bool) (MerchantStatus, error) {
	if current != MerchantPending {
		return "", httperr.ErrConflict("application_already_reviewed")
	}
	if approve {
		return MerchantApproved, nil
	}
	return MerchantRejected, nil
}
