// Package apierrors provides shared error types for the dwaplatform client.
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies which variant of the error taxonomy an error belongs to.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate in the SDK.
	KindUnknown Kind = iota
	// KindConfigurationMissing means no configuration was bound.
	KindConfigurationMissing
	// KindValidation means the input failed local checks.
	KindValidation
	// KindNetwork means no structured service reply was obtained.
	KindNetwork
	// KindAPIReply means the service replied with a non-success status and a JSON body.
	KindAPIReply
)

func (k Kind) String() string {
	switch k {
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	case KindAPIReply:
		return "api_reply"
	default:
		return "unknown"
	}
}

// Sentinel errors for errors.Is() checks
var (
	// ErrConfigurationMissing is returned when a client is requested before
	// a configuration was bound.
	ErrConfigurationMissing = errors.New("dwaplatform init configuration missing")

	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNetwork matches every *NetworkError.
	ErrNetwork = errors.New("network error")

	// ErrAPIReply matches every *APIReplyError.
	ErrAPIReply = errors.New("api reply error")
)

// ValidationError reports a field that failed local checks.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Kind returns KindValidation.
func (e *ValidationError) Kind() Kind { return KindValidation }

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NetworkError represents a transport-level failure with no structured body.
type NetworkError struct {
	Err error
	URL string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Kind returns KindNetwork.
func (e *NetworkError) Kind() Kind { return KindNetwork }

// Is implements errors.Is for sentinel error matching.
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

// APIReplyError is a non-success reply whose body parsed as JSON.
// JSON holds the body exactly as received.
type APIReplyError struct {
	StatusCode int
	JSON       json.RawMessage
	RequestID  string
}

func (e *APIReplyError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("API error %d: %s (request_id: %s)", e.StatusCode, e.JSON, e.RequestID)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, e.JSON)
}

// Kind returns KindAPIReply.
func (e *APIReplyError) Kind() Kind { return KindAPIReply }

// Is implements errors.Is for sentinel error matching.
func (e *APIReplyError) Is(target error) bool {
	return target == ErrAPIReply
}

// Decode unmarshals the reply body into v.
func (e *APIReplyError) Decode(v any) error {
	return json.Unmarshal(e.JSON, v)
}

// KindOf reports the taxonomy variant of err, looking through wrapping.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrConfigurationMissing) {
		return KindConfigurationMissing
	}
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}
