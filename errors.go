package dwaplatform

import (
	"github.com/dwaplatform/client-go/internal/apierrors"
)

// ErrorKind discriminates the variants of the SDK error taxonomy.
type ErrorKind = apierrors.Kind

// Error kinds.
const (
	KindUnknown              = apierrors.KindUnknown
	KindConfigurationMissing = apierrors.KindConfigurationMissing
	KindValidation           = apierrors.KindValidation
	KindNetwork              = apierrors.KindNetwork
	KindAPIReply             = apierrors.KindAPIReply
)

// Sentinel errors for errors.Is() checks
var (
	// ErrConfigurationMissing is returned when a CardClient is requested
	// before Initialize bound a configuration.
	ErrConfigurationMissing = apierrors.ErrConfigurationMissing

	// ErrValidation matches every *ValidationError.
	ErrValidation = apierrors.ErrValidation

	// ErrNetwork matches every *NetworkError.
	ErrNetwork = apierrors.ErrNetwork

	// ErrAPIReply matches every *APIReplyError.
	ErrAPIReply = apierrors.ErrAPIReply
)

// Error is implemented by all typed SDK errors.
type Error interface {
	error
	Kind() ErrorKind
}

// ValidationError reports an input field that failed local checks.
// It is delivered before any network access.
type ValidationError = apierrors.ValidationError

// NetworkError represents a failure where no structured reply was obtained:
// timeouts, connection errors, and error statuses without a JSON body.
type NetworkError = apierrors.NetworkError

// APIReplyError represents a non-success reply from the service whose body
// parsed as JSON. JSON holds the body verbatim.
type APIReplyError = apierrors.APIReplyError

var (
	_ Error = (*ValidationError)(nil)
	_ Error = (*NetworkError)(nil)
	_ Error = (*APIReplyError)(nil)
)

// KindOf reports which variant of the taxonomy err belongs to.
func KindOf(err error) ErrorKind {
	return apierrors.KindOf(err)
}
