package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind buckets every backend failure into the categories the UI reacts to.
type Kind int

const (
	// KindValidation covers malformed requests the user can fix locally.
	KindValidation Kind = iota
	// KindNotFound means a referenced document no longer exists server-side.
	KindNotFound
	// KindServer covers 5xx responses and malformed response bodies.
	KindServer
	// KindNetwork means no usable response arrived at all.
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// Error is the single failure type the client surfaces. StatusCode is zero
// for network failures.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// AsError unwraps err into an *Error, classifying unrecognized errors as
// network failures so callers always see a member of the taxonomy.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &Error{Kind: KindNetwork, Message: err.Error()}
}

// detailPayload matches the backend's error envelope.
type detailPayload struct {
	Detail string `json:"detail"`
}

// classifyStatus maps a non-2xx response into the taxonomy, preferring the
// server-reported detail message when one is present.
func classifyStatus(resp *http.Response, body []byte) *Error {
	message := fmt.Sprintf("request failed with status %s", resp.Status)
	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		message = payload.Detail
	}

	kind := KindServer
	switch resp.StatusCode {
	case http.StatusBadRequest:
		kind = KindValidation
	case http.StatusNotFound:
		kind = KindNotFound
	}
	return &Error{Kind: kind, StatusCode: resp.StatusCode, Message: message}
}

func networkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error()}
}

func decodeError(err error) *Error {
	return &Error{Kind: KindServer, Message: fmt.Sprintf("malformed response body: %v", err)}
}
