package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Request is a transport-agnostic description of one outbound call.
type Request struct {
	Method string
	// Path is the escaped request path, starting with '/'.
	Path string
	// Host and Sandbox come from the bound configuration. Transports decide
	// how they map to a base address.
	Host    string
	Sandbox bool
	Body    []byte
	// RequestID correlates the call in logs and is sent as X-Request-ID.
	RequestID string
}

// RegisterCardPath returns the registration path for an account.
func RegisterCardPath(acct AccountPath) string {
	return fmt.Sprintf("/rest/v1/%s/users/%s/accounts/%s/cards",
		url.PathEscape(acct.ClientID),
		url.PathEscape(acct.UserID),
		url.PathEscape(acct.AccountID))
}

// NewRegisterCardRequest builds the POST that registers a card on an account.
func NewRegisterCardRequest(host string, sandbox bool, acct AccountPath, body RegisterCardRequest) (*Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err) //coverage:ignore
	}

	return &Request{
		Method:    http.MethodPost,
		Path:      RegisterCardPath(acct),
		Host:      host,
		Sandbox:   sandbox,
		Body:      data,
		RequestID: uuid.NewString(),
	}, nil
}
