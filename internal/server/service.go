package server

import (
	"context"
	"fmt"
	"time"

	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/lock"
)

// Service applies availability reads and writes against a gateway.
// Writes for one provider are serialized with a lock.
type Service struct {
	gateway availability.Gateway
	locker  lock.Locker
	lockTTL time.Duration
}

// NewService creates a service.
func NewService(gateway availability.Gateway, locker lock.Locker, lockTTL time.Duration) *Service {
	return &Service{gateway: gateway, locker: locker, lockTTL: lockTTL}
}

// GetAvailability returns the stored intervals for a provider in canonical form.
func (s *Service) GetAvailability(ctx context.Context, providerID string) ([]availability.Interval, error) {
	const op = "server.Service.GetAvailability"

	intervals, err := s.gateway.LoadAvailability(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return availability.Normalize(intervals), nil
}

// UpdateAvailability normalizes and stores intervals for a provider.
// Returns lock.ErrLocked if another save for the same provider is running.
func (s *Service) UpdateAvailability(ctx context.Context, providerID string, intervals []availability.Interval) ([]availability.Interval, error) {
	const op = "server.Service.UpdateAvailability"

	lockKey := fmt.Sprintf("availability:%s", providerID)

	locked, err := s.locker.Lock(ctx, lockKey, s.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: lock error: %w", op, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", op, lock.ErrLocked)
	}
	defer func() {
		_ = s.locker.Unlock(ctx, lockKey)
	}()

	normalized := availability.Normalize(intervals)
	if err := s.gateway.SaveAvailability(ctx, providerID, normalized); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return normalized, nil
}

// ListProviders returns provider summaries if the gateway supports listing.
func (s *Service) ListProviders(ctx context.Context) ([]availability.ProviderSummary, error) {
	const op = "server.Service.ListProviders"

	lister, ok := s.gateway.(availability.Lister)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrListingUnsupported)
	}
	providers, err := lister.ListProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return providers, nil
}
