package httperr

import "errors"

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindUpstream   Kind = "upstream"
	KindPayment    Kind = "payment"
	KindForbidden  Kind = "forbidden"
)

type BusinessError struct {
	Code string
	Kind Kind
}

func (e BusinessError) Error() string {
	return e.Code
}

// ErrBusiness is the generic constructor; the code is treated as a
// validation failure.
func ErrBusiness(code string) error {
	return BusinessError{Code: code, Kind: KindValidation}
}

func ErrValidation(code string) error { return BusinessError{Code: code, Kind: KindValidation} }
func ErrNotFound(code string) error   { return BusinessError{Code: code, Kind: KindNotFound} }
func ErrConflict(code string) error   { return BusinessError{Code: code, Kind: KindConflict} }
func ErrUpstream(code string) error   { return BusinessError{Code: code, Kind: KindUpstream} }
func ErrPayment(code string) error    { return BusinessError{Code: code, Kind: KindPayment} }
func ErrForbidden(code string) error  { return BusinessError{Code: code, Kind: KindForbidden} }

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf returns the category of err, or KindUpstream for anything that is
// not a BusinessError.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUpstream
}

// CodeOf returns the business code of err, or "" when err carries none.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
