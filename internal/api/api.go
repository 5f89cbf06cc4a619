// Package api defines the JSON payloads exchanged between the availability server and its clients.
package api

import "github.com/javiermolinar/weekgrid/internal/availability"

// ErrCode is a machine-readable error code.
type ErrCode string

// Error codes.
const (
	BadRequest    ErrCode = "FAILED_TO_DECODE"
	FailedRequest ErrCode = "REQUEST_FAILED"
	NotFound      ErrCode = "NOT_FOUND"
	Locked        ErrCode = "LOCKED"
)

// RequestIDHeader carries the caller's request id.
const RequestIDHeader = "X-Request-Id"

// Response wraps an optional error.
type Response struct {
	Error *ResponseError `json:"error,omitempty"`
}

// ResponseError describes a failed request.
type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error builds an error response.
func Error(code ErrCode, msg string) Response {
	return Response{
		Error: &ResponseError{
			Code:    string(code),
			Message: msg,
		},
	}
}

// AvailabilityRequest is the body of PUT /providers/{id}/availability.
type AvailabilityRequest struct {
	Intervals []availability.Interval `json:"intervals"`
}

// AvailabilityResponse is returned by the availability endpoints.
type AvailabilityResponse struct {
	Response
	ProviderID   string                  `json:"provider_id"`
	Intervals    []availability.Interval `json:"intervals"`
	TotalMinutes int                     `json:"total_minutes"`
}

// Provider summarises one provider in GET /providers.
type Provider struct {
	ID        string `json:"id"`
	Intervals int    `json:"intervals"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// ProvidersResponse is returned by GET /providers.
type ProvidersResponse struct {
	Response
	Providers []Provider `json:"providers"`
}
