package availability

import (
	"context"
	"time"
)

// Gateway defines the persistence boundary for a provider's weekly availability.
// Implementations store and return interval records; they never see the matrix.
type Gateway interface {
	// LoadAvailability returns the stored intervals for a provider.
	// A provider with nothing stored yields an empty list, not an error.
	LoadAvailability(ctx context.Context, providerID string) ([]Interval, error)

	// SaveAvailability replaces the provider's stored intervals.
	SaveAvailability(ctx context.Context, providerID string, intervals []Interval) error

	// Close releases any resources held by the gateway.
	Close() error
}

// ProviderSummary describes a provider with stored availability.
type ProviderSummary struct {
	ID        string
	Intervals int
	UpdatedAt time.Time
}

// Lister is implemented by gateways that can enumerate stored providers.
type Lister interface {
	ListProviders(ctx context.Context) ([]ProviderSummary, error)
}
