package client

import (
	"encoding/json"
	"fmt"

	apperrors "garageportal/pkg/errors"
	"garageportal/pkg/model"
)

// FallbackMessage is shown whenever a backend error carries no structured
// message of its own.
const FallbackMessage = "An unexpected error occurred. Please try again."

// Envelope is the uniform {status, results} wrapper every upstream returns.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Results []T    `json:"results"`
}

// Unwrap decodes the envelope from a response, converting non-2xx replies
// into an upstream error carrying the backend's first structured message.
func Unwrap[T any](resp *Response) ([]T, error) {
	if !resp.OK() {
		return nil, UpstreamError(resp)
	}

	var env Envelope[T]
	if err := resp.DecodeJSON(&env); err != nil {
		return nil, fmt.Errorf("could not decode response envelope: %w", err)
	}
	return env.Results, nil
}

// UnwrapOne returns the first result of the envelope; the auth and profile
// endpoints always answer with exactly one.
func UnwrapOne[T any](resp *Response) (T, error) {
	var zero T

	results, err := Unwrap[T](resp)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, fmt.Errorf("response envelope carried no results")
	}
	return results[0], nil
}

// UnwrapPage decodes paginated list endpoints, which nest the page inside
// results[0].
func UnwrapPage[T any](resp *Response) (*model.Page[T], error) {
	page, err := UnwrapOne[model.Page[T]](resp)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Check converts a non-2xx status into an upstream error for endpoints whose
// success body is not consumed.
func Check(resp *Response) error {
	if !resp.OK() {
		return UpstreamError(resp)
	}
	return nil
}

// UpstreamError extracts results[0].message from an error envelope, falling
// back to a generic string, and preserves the backend's HTTP status.
func UpstreamError(resp *Response) *apperrors.AppError {
	return apperrors.Upstream(errorMessage(resp), resp.StatusCode, nil)
}

func errorMessage(resp *Response) string {
	var env struct {
		Results []struct {
			Message string `json:"message"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body, &env); err == nil {
		if len(env.Results) > 0 && env.Results[0].Message != "" {
			return env.Results[0].Message
		}
	}
	return FallbackMessage
}
