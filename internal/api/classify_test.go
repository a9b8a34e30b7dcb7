package api

import (
	"errors"
	"strings"
	"testing"

	"github.com/dwaplatform/client-go/internal/apierrors"
)

func TestClassify_Success(t *testing.T) {
	card, err := Classify(Delivery{
		StatusCode: 201,
		Body:       []byte(`{"id":"card-1","alias":"123456XXXXXX5678","status":"CREATED"}`),
	})
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if card == nil {
		t.Fatal("Classify() card = nil")
	}
	if card.ID != "card-1" || card.Status != "CREATED" {
		t.Errorf("card = %+v", card)
	}
}

func TestClassify_RawFailure(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	card, err := Classify(Delivery{Err: cause, URL: "https://api.example.com/x"})
	if card != nil {
		t.Errorf("card = %+v, want nil", card)
	}

	var netErr *apierrors.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error type = %T, want *NetworkError", err)
	}
	if !errors.Is(err, cause) {
		t.Error("NetworkError does not wrap the transport cause")
	}
	if netErr.URL != "https://api.example.com/x" {
		t.Errorf("URL = %s", netErr.URL)
	}
}

func TestClassify_APIReply(t *testing.T) {
	body := `{"error":"invalid_card"}`
	card, err := Classify(Delivery{StatusCode: 422, Body: []byte(body)})
	if card != nil {
		t.Errorf("card = %+v, want nil", card)
	}

	var replyErr *apierrors.APIReplyError
	if !errors.As(err, &replyErr) {
		t.Fatalf("error type = %T, want *APIReplyError", err)
	}
	if replyErr.StatusCode != 422 {
		t.Errorf("StatusCode = %d, want 422", replyErr.StatusCode)
	}
	if string(replyErr.JSON) != body {
		t.Errorf("JSON = %s, want %s", replyErr.JSON, body)
	}
}

func TestClassify_APIReplyRequestID(t *testing.T) {
	tests := []struct {
		name     string
		delivery Delivery
		want     string
	}{
		{
			name:     "from body",
			delivery: Delivery{StatusCode: 400, Body: []byte(`{"error":"x","request_id":"req-body"}`), RequestID: "req-header"},
			want:     "req-body",
		},
		{
			name:     "from header",
			delivery: Delivery{StatusCode: 400, Body: []byte(`{"error":"x"}`), RequestID: "req-header"},
			want:     "req-header",
		},
		{
			name:     "array body",
			delivery: Delivery{StatusCode: 400, Body: []byte(`["a","b"]`)},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.delivery)
			var replyErr *apierrors.APIReplyError
			if !errors.As(err, &replyErr) {
				t.Fatalf("error type = %T, want *APIReplyError", err)
			}
			if replyErr.RequestID != tt.want {
				t.Errorf("RequestID = %q, want %q", replyErr.RequestID, tt.want)
			}
		})
	}
}

func TestClassify_NetworkErrorCases(t *testing.T) {
	tests := []struct {
		name     string
		delivery Delivery
		contains string
	}{
		{"error status with HTML body", Delivery{StatusCode: 502, Body: []byte("<html>Bad Gateway</html>")}, "HTTP 502"},
		{"error status with empty body", Delivery{StatusCode: 503}, "HTTP 503"},
		{"error status with truncated JSON", Delivery{StatusCode: 500, Body: []byte(`{"error":`)}, "HTTP 500"},
		{"success with empty body", Delivery{StatusCode: 200}, "unexpected card payload"},
		{"success with array body", Delivery{StatusCode: 200, Body: []byte(`[]`)}, "unexpected card payload"},
		{"success with broken JSON", Delivery{StatusCode: 200, Body: []byte(`{"id":`)}, "failed to decode card"},
		{"success with wrong field type", Delivery{StatusCode: 200, Body: []byte(`{"id":42}`)}, "failed to decode card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card, err := Classify(tt.delivery)
			if card != nil {
				t.Errorf("card = %+v, want nil", card)
			}
			var netErr *apierrors.NetworkError
			if !errors.As(err, &netErr) {
				t.Fatalf("error type = %T, want *NetworkError", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestClassify_LongBodyIsTruncated(t *testing.T) {
	body := strings.Repeat("x", 1000)
	_, err := Classify(Delivery{StatusCode: 500, Body: []byte(body)})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Error()) > 300 {
		t.Errorf("error message not truncated: %d bytes", len(err.Error()))
	}
}
