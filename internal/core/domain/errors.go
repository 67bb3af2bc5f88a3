package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// Configuration Errors
// ============================================================================

var (
	ErrConfigNotFound = errors.New("microsoft 365 configuration not found")
	ErrMissingTenant  = errors.New("tenant ID is required")
	ErrMissingClient  = errors.New("client ID is required")
	ErrMissingSecret  = errors.New("client secret is required")
)

// ============================================================================
// Auth Errors
// ============================================================================

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingUsername    = errors.New("username is required")
	ErrMissingPassword    = errors.New("password is required")
)

// ============================================================================
// SharePoint / Graph Errors
// ============================================================================

var (
	ErrSiteNotResolved   = errors.New("could not resolve sharepoint site")
	ErrListNotFound      = errors.New("sharepoint list not found")
	ErrViewsNotAvailable = errors.New("views are not available for this list")
)

// TokenError carries the diagnostic fields returned by the Microsoft identity
// platform when a client-credentials grant fails.
type TokenError struct {
	Code          string
	Description   string
	Suberror      string
	ErrorCodes    []int
	CorrelationID string
	TraceID       string
}

func (e *TokenError) Error() string {
	parts := make([]string, 0, 6)
	if e.Code != "" {
		parts = append(parts, "error: "+e.Code)
	}
	if e.Description != "" {
		parts = append(parts, "error_description: "+e.Description)
	}
	if e.Suberror != "" {
		parts = append(parts, "suberror: "+e.Suberror)
	}
	if len(e.ErrorCodes) > 0 {
		codes := make([]string, len(e.ErrorCodes))
		for i, c := range e.ErrorCodes {
			codes[i] = fmt.Sprintf("%d", c)
		}
		parts = append(parts, "error_codes: "+strings.Join(codes, ","))
	}
	if e.CorrelationID != "" {
		parts = append(parts, "correlation_id: "+e.CorrelationID)
	}
	if e.TraceID != "" {
		parts = append(parts, "trace_id: "+e.TraceID)
	}
	if len(parts) == 0 {
		return "failed to acquire token: unknown error"
	}
	return "failed to acquire token: " + strings.Join(parts, "; ")
}

// UpstreamError wraps a non-2xx response from Graph or SharePoint REST so the
// status and body survive up to the handler layer.
type UpstreamError struct {
	Operation string
	Status    int
	Body      string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Operation, e.Status, e.Body)
}
