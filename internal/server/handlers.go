package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/javiermolinar/weekgrid/internal/api"
	"github.com/javiermolinar/weekgrid/internal/availability"
	"github.com/javiermolinar/weekgrid/internal/lock"
)

// ErrListingUnsupported is returned when the gateway cannot enumerate providers.
var ErrListingUnsupported = errors.New("provider listing not supported by storage")

// AvailabilityGetter loads a provider's availability.
type AvailabilityGetter interface {
	GetAvailability(ctx context.Context, providerID string) ([]availability.Interval, error)
}

// AvailabilityUpdater replaces a provider's availability.
type AvailabilityUpdater interface {
	UpdateAvailability(ctx context.Context, providerID string, intervals []availability.Interval) ([]availability.Interval, error)
}

// ProvidersLister lists providers.
type ProvidersLister interface {
	ListProviders(ctx context.Context) ([]availability.ProviderSummary, error)
}

func getAvailability(log *zap.Logger, getter AvailabilityGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.get"

		log := log.With(
			zap.String("op", op),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			log.Error("id is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error(api.BadRequest, "provider id is required"))
			return
		}

		intervals, err := getter.GetAvailability(r.Context(), id)
		if err != nil {
			log.Error("failed to load availability", zap.Error(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, api.Error(api.FailedRequest, "failed to load availability"))
			return
		}

		log.Debug("availability loaded", zap.String("provider_id", id), zap.Int("intervals", len(intervals)))
		responseOK(w, r, id, intervals)
	}
}

func updateAvailability(log *zap.Logger, updater AvailabilityUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.availability.update"

		log := log.With(
			zap.String("op", op),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			log.Error("id is empty")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error(api.BadRequest, "provider id is required"))
			return
		}

		var req api.AvailabilityRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", zap.Error(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, api.Error(api.BadRequest, "failed to decode request"))
			return
		}

		intervals, err := updater.UpdateAvailability(r.Context(), id, req.Intervals)
		if errors.Is(err, lock.ErrLocked) {
			log.Warn("availability is locked", zap.String("provider_id", id))
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, api.Error(api.Locked, "another save for this provider is in progress"))
			return
		}
		if err != nil {
			log.Error("failed to update availability", zap.Error(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, api.Error(api.FailedRequest, "failed to update availability"))
			return
		}

		log.Info("availability updated",
			zap.String("provider_id", id),
			zap.Int("received", len(req.Intervals)),
			zap.Int("stored", len(intervals)),
		)
		responseOK(w, r, id, intervals)
	}
}

func listProviders(log *zap.Logger, lister ProvidersLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.providers.list"

		log := log.With(
			zap.String("op", op),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)

		providers, err := lister.ListProviders(r.Context())
		if errors.Is(err, ErrListingUnsupported) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, api.Error(api.NotFound, "provider listing is not available"))
			return
		}
		if err != nil {
			log.Error("failed to list providers", zap.Error(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, api.Error(api.FailedRequest, "failed to list providers"))
			return
		}

		out := make([]api.Provider, 0, len(providers))
		for _, p := range providers {
			item := api.Provider{ID: p.ID, Intervals: p.Intervals}
			if !p.UpdatedAt.IsZero() {
				item.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339)
			}
			out = append(out, item)
		}
		render.JSON(w, r, api.ProvidersResponse{Providers: out})
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func responseOK(w http.ResponseWriter, r *http.Request, providerID string, intervals []availability.Interval) {
	render.JSON(w, r, api.AvailabilityResponse{
		ProviderID:   providerID,
		Intervals:    intervals,
		TotalMinutes: availability.TotalMinutes(intervals),
	})
}
