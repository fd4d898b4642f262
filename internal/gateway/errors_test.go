package gateway

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestBackendErr_MessageExtraction(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"detail field", 404, `{"detail":"Repository not found"}`, "Repository not found"},
		{"message field", 500, `{"message":"boom"}`, "boom"},
		{"error field", 502, `{"error":"bad gateway"}`, "bad gateway"},
		{"msg field", 400, `{"msg":"nope"}`, "nope"},
		{"detail wins over message", 400, `{"message":"second","detail":"first"}`, "first"},
		{"empty detail falls through", 403, `{"detail":"","message":"forbidden"}`, "forbidden"},
		{"no structured body", 404, `not json`, "404 Not Found"},
		{"empty body", 503, ``, "503 Service Unavailable"},
		{"json without fields", 500, `{"other":1}`, "500 Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := backendErr(fakeResponse(tt.status, tt.body))
			if err.Kind != KindBackend {
				t.Errorf("kind = %v, want backend", err.Kind)
			}
			if err.Status != tt.status {
				t.Errorf("status = %d, want %d", err.Status, tt.status)
			}
			if err.Message != tt.want {
				t.Errorf("message = %q, want %q", err.Message, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	gwErr := &Error{Kind: KindBackend, Status: 404, Message: "missing"}

	t.Run("gateway errors pass through", func(t *testing.T) {
		if got := normalize(fmt.Errorf("wrapped: %w", gwErr)); got != gwErr {
			t.Errorf("expected passthrough, got %v", got)
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if got := normalize(nil); got != nil {
			t.Errorf("expected nil, got %v", got)
		}
	})

	t.Run("other errors become unknown", func(t *testing.T) {
		got := normalize(errors.New("something odd"))
		if got.Kind != KindUnknown || got.Message != "something odd" {
			t.Errorf("unexpected result: %+v", got)
		}
	})
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindValidation, "validation"},
		{KindBackend, "backend"},
		{KindTransport, "transport"},
		{KindDecode, "decode"},
		{KindUnknown, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
