package requests

import (
	"context"
	"net/http"
	"time"
)

// Transport performs the actual network call. Implementations receive the
// builder's accumulated options and must honor the keys documented on
// Options; unknown Extra settings may be ignored.
type Transport interface {
	Request(ctx context.Context, method, path string, options Options) (RawResponse, error)
}

// RawResponse is the transport's view of a response. Status and headers are
// available as soon as the transport returns; Content blocks until the full
// body is read and memoizes it.
type RawResponse interface {
	StatusCode() int
	Headers() http.Header

	// Content returns the full raw body, reading and buffering it on first
	// call.
	Content() ([]byte, error)

	// Decode parses the body into a generic structure using the transport's
	// own content-type-driven decoder. This is a separate path from the
	// Serializer and the two are not guaranteed to agree on edge cases.
	Decode() (any, error)

	// Info returns request metadata for error reporting.
	Info() Info

	// Stream yields body chunks as the transport receives them. A chunk
	// arrives with Timeout set when the idle timeout elapses before data; the
	// final chunk has Last set. Cancel ctx to stop consuming early.
	Stream(ctx context.Context, timeout time.Duration) <-chan Chunk
}

// Info is the request metadata a transport records about a response.
type Info struct {
	Method string
	URL    string
}

// Chunk is a fragment of a streamed response body.
type Chunk struct {
	// Data holds the received bytes. Empty for timeout-marker chunks.
	Data []byte

	// Timeout marks a pseudo-chunk emitted when the idle timeout elapsed
	// before the next read completed. The stream continues afterwards.
	Timeout bool

	// Last marks the final chunk of the body.
	Last bool

	// Err carries a transport failure; the stream ends after an error chunk.
	Err error
}
