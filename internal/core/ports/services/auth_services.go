package services

import (
	"context"
	"time"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// Authenticate checks the supplied password against the configured hash
	// and issues a signed access token on success.
	Authenticate(ctx context.Context, password string) (string, time.Time, error)
}
