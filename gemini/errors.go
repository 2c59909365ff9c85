package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fwojciec/docsearch"
)

// maxErrorBody bounds the response excerpt kept in an EndpointError.
const maxErrorBody = 512

// TransportError reports that the request did not produce a readable
// response: dial or TLS failure, timeout, truncated body, or an envelope
// that is not JSON. It is retryable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "gemini transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Kind returns docsearch.FailureTransport.
func (e *TransportError) Kind() docsearch.FailureKind { return docsearch.FailureTransport }

// EndpointError reports a non-success HTTP status. It is not retried.
type EndpointError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *EndpointError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini endpoint: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini endpoint: HTTP %d: %s", e.StatusCode, e.Message)
}

// Kind returns docsearch.FailureEndpoint.
func (e *EndpointError) Kind() docsearch.FailureKind { return docsearch.FailureEndpoint }

// MalformedResponseError reports a success response without a usable
// categorization. It is not retried.
type MalformedResponseError struct {
	// Text is the generated text, if any.
	Text   string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gemini malformed response: %s: %v", e.Reason, e.Err)
	}
	return "gemini malformed response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Kind returns docsearch.FailureMalformed.
func (e *MalformedResponseError) Kind() docsearch.FailureKind { return docsearch.FailureMalformed }

// FailureKindOf returns the failure kind carried by err. Errors that carry
// no kind are treated as transport failures.
func FailureKindOf(err error) docsearch.FailureKind {
	var k interface{ Kind() docsearch.FailureKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return docsearch.FailureTransport
}

// newEndpointError builds an EndpointError from a non-success response,
// preferring the message of a Google API error envelope.
func newEndpointError(code int, status string, body []byte) *EndpointError {
	e := &EndpointError{StatusCode: code, Status: status}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		e.Message = envelope.Error.Message
		if envelope.Error.Status != "" {
			e.Status = envelope.Error.Status
		}
		return e
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = Truncate(msg, maxErrorBody) + "..."
	}
	e.Message = msg
	return e
}
