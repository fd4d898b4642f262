package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Kind classifies a gateway failure.
type Kind int

const (
	// KindValidation is a missing required argument, caught before any
	// network I/O.
	KindValidation Kind = iota
	// KindBackend is a non-2xx HTTP response from the backend.
	KindBackend
	// KindTransport means the request produced no response at all
	// (timeout, DNS failure, connection refused).
	KindTransport
	// KindDecode means the backend answered with a payload shape this
	// client does not recognize.
	KindDecode
	// KindUnknown covers everything else.
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBackend:
		return "backend"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the single failure shape every gateway call returns. Message is
// always human-readable; Status is set for backend errors only.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func validationErr(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func decodeErr(format string, args ...any) *Error {
	return &Error{Kind: KindDecode, Message: fmt.Sprintf(format, args...)}
}

// backendBody is the set of field spellings backends use for error details.
type backendBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Err     string `json:"error"`
	Msg     string `json:"msg"`
}

func (b backendBody) first() string {
	for _, s := range []string{b.Detail, b.Message, b.Err, b.Msg} {
		if s != "" {
			return s
		}
	}
	return ""
}

// backendErr builds a backend Error from a non-2xx response, preferring a
// structured message from the body over the bare status line.
func backendErr(resp *http.Response) *Error {
	msg := fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil {
		var parsed backendBody
		if json.Unmarshal(body, &parsed) == nil {
			if m := parsed.first(); m != "" {
				msg = m
			}
		}
	}
	return &Error{Kind: KindBackend, Status: resp.StatusCode, Message: msg}
}

// normalize folds any failure into the single Error shape. Gateway errors
// pass through unchanged so composite calls propagate their cause verbatim.
func normalize(err error) *Error {
	if err == nil {
		return nil
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr
	}
	if isTransport(err) {
		return &Error{Kind: KindTransport, Message: "Network error: backend unreachable"}
	}
	msg := err.Error()
	if msg == "" {
		msg = "Unknown error occurred"
	}
	return &Error{Kind: KindUnknown, Message: msg}
}

// isTransport reports whether err means the request never got a response.
// url.Error wraps every client-side transport failure, including context
// deadlines fired mid-flight.
func isTransport(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
