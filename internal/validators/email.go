package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// Resolver is the part of *net.Resolver the e-mail check needs.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NewEmailDomainCheck returns a check that accepts an address whose domain
// has an MX record or, failing that, any address record. Each lookup is
// bounded by timeout.
func NewEmailDomainCheck(r Resolver, timeout time.Duration) func(email string) bool {
	return func(email string) bool {
		domain, ok := emailDomain(email)
		if !ok {
			return false
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
			return true
		}
		if hosts, err := r.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
			return true
		}
		return false
	}
}

func emailDomain(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:])), true
}
