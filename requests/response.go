package requests

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/PugKong/symfony-requests/serializer"
)

// Response wraps a transport response. It holds no state of its own beyond
// references to the raw response and the serializer, so it is safe to share.
type Response struct {
	request    Request
	raw        RawResponse
	serializer *serializer.Serializer
	format     string
}

// Request returns the builder that produced this response.
func (r *Response) Request() Request {
	return r.request
}

// CheckStatus returns the receiver when the observed status is one of the
// expected codes, enabling further chaining. On a mismatch it returns a
// *StatusCodeError carrying the expected set and the response itself.
func (r *Response) CheckStatus(expected ...int) (*Response, error) {
	if slices.Contains(expected, r.Status()) {
		return r, nil
	}

	return nil, &StatusCodeError{
		Expected: slices.Clone(expected),
		Response: r,
	}
}

// Status returns the response status code.
func (r *Response) Status() int {
	return r.raw.StatusCode()
}

// Headers returns the full response header map. The body is not retrieved.
func (r *Response) Headers() http.Header {
	return r.raw.Headers()
}

// Header returns all values of the named header, case-insensitively. A
// missing header yields an empty slice, never an error.
func (r *Response) Header(name string) []string {
	values := r.raw.Headers().Values(name)
	if values == nil {
		return []string{}
	}

	return values
}

// Content returns the raw body as a string, reading it in full.
func (r *Response) Content() (string, error) {
	body, err := r.raw.Content()
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Array returns the body parsed into a generic structure by the transport's
// own content-type-driven decoder, independent of the Serializer.
func (r *Response) Array() (any, error) {
	return r.raw.Decode()
}

// Stream yields body chunks as the transport receives them. A timeout of
// zero disables the idle timeout.
func (r *Response) Stream(ctx context.Context, timeout time.Duration) <-chan Chunk {
	return r.raw.Stream(ctx, timeout)
}

// FormatOption overrides the serialization format or context for a single
// Body, Object, or Objects call.
type FormatOption func(*formatConfig)

type formatConfig struct {
	format  string
	context serializer.Context
}

// WithFormat overrides the default format.
func WithFormat(format string) FormatOption {
	return func(cfg *formatConfig) {
		cfg.format = format
	}
}

// WithContext passes codec options to the serializer.
func WithContext(ctx serializer.Context) FormatOption {
	return func(cfg *formatConfig) {
		cfg.context = ctx
	}
}

// Object deserializes the body into a single T using the response format, or
// the overrides given via WithFormat/WithContext.
func Object[T any](r *Response, opts ...FormatOption) (T, error) {
	var v T

	body, err := r.raw.Content()
	if err != nil {
		return v, err
	}

	cfg := formatConfig{format: r.format}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := r.serializer.Deserialize(body, &v, cfg.format, cfg.context); err != nil {
		return v, err
	}

	return v, nil
}

// Objects deserializes the body into a list of T using the response format,
// or the overrides given via WithFormat/WithContext.
func Objects[T any](r *Response, opts ...FormatOption) ([]T, error) {
	var v []T

	body, err := r.raw.Content()
	if err != nil {
		return nil, err
	}

	cfg := formatConfig{format: r.format}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := r.serializer.Deserialize(body, &v, cfg.format, cfg.context); err != nil {
		return nil, err
	}

	return v, nil
}
