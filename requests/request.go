package requests

import (
	"context"
	"net/http"

	"github.com/PugKong/symfony-requests/serializer"
)

// Request is an immutable request builder. Every mutator returns a new
// Request; the receiver is never modified, so partially configured builders
// are safe to share and fork.
type Request struct {
	transport  Transport
	serializer *serializer.Serializer

	requestFormat  string
	responseFormat string

	method  string
	path    string
	options Options

	err error
}

// Option configures a Request created by New.
type Option func(*Request)

// WithRequestFormat sets the default serialization format for Body.
func WithRequestFormat(format string) Option {
	return func(r *Request) {
		r.requestFormat = format
	}
}

// WithResponseFormat sets the default deserialization format for Object and
// Objects.
func WithResponseFormat(format string) Option {
	return func(r *Request) {
		r.responseFormat = format
	}
}

// WithOptions sets the base transport options.
func WithOptions(options Options) Option {
	return func(r *Request) {
		r.options = options.clone()
	}
}

// New creates a request builder on top of the given transport and
// serializer. Both request and response formats default to JSON.
func New(transport Transport, s *serializer.Serializer, opts ...Option) Request {
	r := Request{
		transport:      transport,
		serializer:     s,
		requestFormat:  serializer.FormatJSON,
		responseFormat: serializer.FormatJSON,
	}

	for _, opt := range opts {
		opt(&r)
	}

	return r
}

// Base sets the base URI the request path is resolved against.
func (r Request) Base(uri string) Request {
	r.options = r.options.clone()
	r.options.BaseURI = uri

	return r
}

// Get sets the method to GET and the request path.
func (r Request) Get(path string) Request { return r.verb(http.MethodGet, path) }

// Post sets the method to POST and the request path.
func (r Request) Post(path string) Request { return r.verb(http.MethodPost, path) }

// Put sets the method to PUT and the request path.
func (r Request) Put(path string) Request { return r.verb(http.MethodPut, path) }

// Patch sets the method to PATCH and the request path.
func (r Request) Patch(path string) Request { return r.verb(http.MethodPatch, path) }

// Delete sets the method to DELETE and the request path.
func (r Request) Delete(path string) Request { return r.verb(http.MethodDelete, path) }

// Options sets the method to OPTIONS and the request path.
func (r Request) Options(path string) Request { return r.verb(http.MethodOptions, path) }

func (r Request) verb(method, path string) Request {
	r.method = method
	r.path = path

	return r
}

// Vars merges path-template variables into the builder; existing keys are
// overwritten by new ones. With overwrite set, the variable map is replaced
// entirely.
func (r Request) Vars(vars map[string]string, overwrite bool) Request {
	r.options = r.options.clone()
	r.options.Vars = mergeMap(r.options.Vars, vars, overwrite)

	return r
}

// Var sets a single path-template variable.
func (r Request) Var(name, value string) Request {
	return r.Vars(map[string]string{name: value}, false)
}

// Headers merges request headers into the builder; existing keys are
// overwritten by new ones. With overwrite set, the header map is replaced
// entirely.
func (r Request) Headers(headers map[string]string, overwrite bool) Request {
	r.options = r.options.clone()
	r.options.Headers = mergeMap(r.options.Headers, headers, overwrite)

	return r
}

// Header sets a single request header.
func (r Request) Header(name, value string) Request {
	return r.Headers(map[string]string{name: value}, false)
}

// Query replaces the query parameters. Unlike Vars and Headers there is no
// merge: every call discards the previous map.
func (r Request) Query(query map[string]string) Request {
	r.options = r.options.clone()
	r.options.Query = mergeMap(nil, query, true)

	return r
}

// Body serializes v using the configured request format, or the format and
// context given via WithFormat/WithContext, and stores the result as the
// request body. A serialization failure is carried in the builder and
// returned unmodified by Response.
func (r Request) Body(v any, opts ...FormatOption) Request {
	cfg := formatConfig{format: r.requestFormat}
	for _, opt := range opts {
		opt(&cfg)
	}

	body, err := r.serializer.Serialize(v, cfg.format, cfg.context)
	if err != nil {
		r.err = err

		return r
	}

	return r.RawBody(body)
}

// RawBody stores v as the request body without serialization. The transport
// accepts a string, []byte, io.Reader, func() io.Reader, or [][]byte chunks.
func (r Request) RawBody(v any) Request {
	r.options = r.options.clone()
	r.options.Body = v

	return r
}

// Basic sets HTTP Basic credentials. An empty password keeps only the user
// in the credential pair, so the transport encodes "user" rather than
// "user:".
func (r Request) Basic(user, password string) Request {
	r.options = r.options.clone()
	r.options.AuthBasic = []string{user}
	if password != "" {
		r.options.AuthBasic = append(r.options.AuthBasic, password)
	}

	return r
}

// Bearer sets a Bearer token.
func (r Request) Bearer(token string) Request {
	r.options = r.options.clone()
	r.options.AuthBearer = token

	return r
}

// Response executes the request through the transport and wraps the result.
// It panics when no verb method has been called: executing a builder without
// method and path is a defect in the calling code, not a runtime condition.
func (r Request) Response(ctx context.Context) (*Response, error) {
	if r.method == "" || r.path == "" {
		panic("requests: method and path were not set")
	}

	if r.err != nil {
		return nil, r.err
	}

	raw, err := r.transport.Request(ctx, r.method, r.path, r.options.clone())
	if err != nil {
		return nil, err
	}

	return &Response{
		request:    r,
		raw:        raw,
		serializer: r.serializer,
		format:     r.responseFormat,
	}, nil
}
