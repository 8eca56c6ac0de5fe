package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"weather-board/models"
)

var (
	// ErrUnavailable marks failures a later request may not hit again
	ErrUnavailable = errors.New("upstream temporarily unavailable")
	// ErrFailed marks failures caused by the request or the payload itself
	ErrFailed = errors.New("upstream request failed")
	// ErrCountryNotFound is returned when a code or name is not in the country table
	ErrCountryNotFound = errors.New("country not found")
	// ErrLocationNotFound is returned when an IP has no city on record
	ErrLocationNotFound = errors.New("location not found")
)

// Classify maps an error returned by this package to an availability
func Classify(err error) models.Availability {
	switch {
	case err == nil:
		return models.Available
	case errors.Is(err, ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return models.Unavailable
	default:
		return models.Failed
	}
}

// getBody issues a GET request and returns the response body of a 2xx reply
func getBody(ctx context.Context, client *http.Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w: %w", ErrFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := ErrFailed
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			kind = ErrUnavailable
		}
		return nil, fmt.Errorf("%w: API error (status %d): %s", kind, resp.StatusCode, string(body))
	}

	return body, nil
}
