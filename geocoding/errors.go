// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GeocodingError represents a provider specific geocoding failure.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding errors.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit too many requests.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded quota exhausted or access denied.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout the provider did not answer in time.
	ErrorTypeTimeout
	// ErrorTypeNotFound the provider has no match for the query.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest the provider rejected the request.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError transport or upstream availability failure.
	ErrorTypeNetworkError
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "rate_limit"
	case ErrorTypeQuotaExceeded:
		return "quota_exceeded"
	case ErrorTypeTimeout:
		return "timeout"
	case ErrorTypeNotFound:
		return "not_found"
	case ErrorTypeInvalidRequest:
		return "invalid_request"
	case ErrorTypeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// errNotFound builds the error providers return when nothing matched query.
func errNotFound(provider, query string) *GeocodingError {
	return &GeocodingError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s: no results found for %q", provider, query),
	}
}

// IsNotFoundError reports whether the provider had no match for the query.
func IsNotFoundError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeNotFound
	}

	return false
}

// IsRateLimitError reports whether the error is due to rate limiting.
func IsRateLimitError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeRateLimit
	}

	// Detect common error messages
	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether the provider quota is exhausted.
func IsQuotaExceededError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeQuotaExceeded
	}

	// Google Maps reports it in the status field
	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether the request timed out.
func IsTimeoutError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps an HTTP status code to a geocoding error.
func ClassifyHTTPError(statusCode int, body string) *GeocodingError {
	var ret *GeocodingError

	switch statusCode {
	case http.StatusTooManyRequests: // 429
		ret = &GeocodingError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusUnauthorized, http.StatusForbidden: // 401, 403
		ret = &GeocodingError{
			Type:    ErrorTypeQuotaExceeded,
			Message: fmt.Sprintf("quota exceeded or access denied (status %d)", statusCode),
		}
	case http.StatusBadRequest: // 400
		ret = &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound: // 404
		ret = &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "location not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		ret = &GeocodingError{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		ret = &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}

	if body = strings.TrimSpace(body); body != "" {
		ret.Err = errors.New(body)
	}

	return ret
}

// transportError wraps a failed HTTP round trip.
func transportError(provider string, err error) *GeocodingError {
	t := ErrorTypeNetworkError
	if IsTimeoutError(err) {
		t = ErrorTypeTimeout
	}

	return &GeocodingError{
		Type:    t,
		Message: provider + " geocoding request failed",
		Err:     err,
	}
}
