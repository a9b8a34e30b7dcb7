package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dwaplatform/client-go/internal/apierrors"
)

// maxSnippet is how much of an unparsable body is quoted in a NetworkError.
const maxSnippet = 128

// Classify turns a Delivery into a Card or a typed error. Exactly one of the
// results is non-nil. It performs no I/O.
func Classify(d Delivery) (*Card, error) {
	if d.Err != nil {
		return nil, &apierrors.NetworkError{Err: d.Err, URL: d.URL}
	}

	if d.StatusCode < 200 || d.StatusCode > 299 {
		return nil, classifyErrorReply(d)
	}

	body := bytes.TrimSpace(d.Body)
	if len(body) == 0 || body[0] != '{' {
		return nil, &apierrors.NetworkError{
			Err: fmt.Errorf("unexpected card payload with status %d: %q", d.StatusCode, snippet(body)),
			URL: d.URL,
		}
	}

	var card Card
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, &apierrors.NetworkError{
			Err: fmt.Errorf("failed to decode card: %w", err),
			URL: d.URL,
		}
	}
	return &card, nil
}

func classifyErrorReply(d Delivery) error {
	body := bytes.TrimSpace(d.Body)
	if len(body) == 0 || !json.Valid(body) {
		return &apierrors.NetworkError{
			Err: fmt.Errorf("HTTP %d with non-JSON body: %q", d.StatusCode, snippet(body)),
			URL: d.URL,
		}
	}

	requestID := d.RequestID
	var meta struct {
		RequestID string `json:"request_id"`
	}
	if json.Unmarshal(body, &meta) == nil && meta.RequestID != "" {
		requestID = meta.RequestID
	}

	return &apierrors.APIReplyError{
		StatusCode: d.StatusCode,
		JSON:       append(json.RawMessage(nil), d.Body...),
		RequestID:  requestID,
	}
}

func snippet(b []byte) string {
	if len(b) > maxSnippet {
		return string(b[:maxSnippet]) + "..."
	}
	return string(b)
}
