package requests

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/PugKong/symfony-requests/serializer"
)

// fakeTransport records the last call and returns a canned raw response.
type fakeTransport struct {
	method  string
	path    string
	options Options

	raw RawResponse
	err error
}

func (t *fakeTransport) Request(_ context.Context, method, path string, options Options) (RawResponse, error) {
	t.method = method
	t.path = path
	t.options = options

	if t.err != nil {
		return nil, t.err
	}
	if t.raw == nil {
		t.raw = &fakeRawResponse{status: http.StatusOK}
	}

	return t.raw, nil
}

type fakeRawResponse struct {
	status  int
	headers http.Header
	body    string
	info    Info
}

func (r *fakeRawResponse) StatusCode() int { return r.status }

func (r *fakeRawResponse) Headers() http.Header {
	if r.headers == nil {
		return http.Header{}
	}

	return r.headers
}

func (r *fakeRawResponse) Content() ([]byte, error) { return []byte(r.body), nil }

func (r *fakeRawResponse) Decode() (any, error) { return nil, errors.New("not implemented") }

func (r *fakeRawResponse) Info() Info { return r.info }

func (r *fakeRawResponse) Stream(ctx context.Context, _ time.Duration) <-chan Chunk {
	out := make(chan Chunk, 1)
	out <- Chunk{Data: []byte(r.body), Last: true}
	close(out)

	return out
}

func newTestRequest(transport Transport, opts ...Option) Request {
	return New(transport, serializer.New(serializer.WithEncoder(serializer.FormEncoder{})), opts...)
}

func TestRequest_Verbs(t *testing.T) {
	tests := []struct {
		name   string
		build  func(r Request) Request
		method string
	}{
		{"GET", func(r Request) Request { return r.Get("/path") }, http.MethodGet},
		{"POST", func(r Request) Request { return r.Post("/path") }, http.MethodPost},
		{"PUT", func(r Request) Request { return r.Put("/path") }, http.MethodPut},
		{"PATCH", func(r Request) Request { return r.Patch("/path") }, http.MethodPatch},
		{"DELETE", func(r Request) Request { return r.Delete("/path") }, http.MethodDelete},
		{"OPTIONS", func(r Request) Request { return r.Options("/path") }, http.MethodOptions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}

			_, err := tt.build(newTestRequest(transport)).Response(context.Background())
			if err != nil {
				t.Fatalf("Error executing request: %v", err)
			}

			if transport.method != tt.method {
				t.Errorf("Expected method %s, got %s", tt.method, transport.method)
			}
			if transport.path != "/path" {
				t.Errorf("Expected path /path, got %s", transport.path)
			}
		})
	}
}

func TestRequest_VarsMerge(t *testing.T) {
	tests := []struct {
		name     string
		build    func(r Request) Request
		expected map[string]string
	}{
		{
			name: "merge keeps old keys and overwrites conflicts",
			build: func(r Request) Request {
				return r.
					Vars(map[string]string{"a": "1", "b": "2"}, false).
					Vars(map[string]string{"b": "3", "c": "4"}, false)
			},
			expected: map[string]string{"a": "1", "b": "3", "c": "4"},
		},
		{
			name: "overwrite replaces the whole map",
			build: func(r Request) Request {
				return r.
					Vars(map[string]string{"a": "1", "b": "2"}, false).
					Vars(map[string]string{"c": "3"}, true)
			},
			expected: map[string]string{"c": "3"},
		},
		{
			name: "single var is sugar for merge",
			build: func(r Request) Request {
				return r.
					Vars(map[string]string{"a": "1"}, false).
					Var("b", "2")
			},
			expected: map[string]string{"a": "1", "b": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}

			_, err := tt.build(newTestRequest(transport)).Get("/").Response(context.Background())
			if err != nil {
				t.Fatalf("Error executing request: %v", err)
			}

			if !reflect.DeepEqual(transport.options.Vars, tt.expected) {
				t.Errorf("Expected vars %v, got %v", tt.expected, transport.options.Vars)
			}
		})
	}
}

func TestRequest_HeadersMerge(t *testing.T) {
	tests := []struct {
		name     string
		build    func(r Request) Request
		expected map[string]string
	}{
		{
			name: "merge keeps old keys and overwrites conflicts",
			build: func(r Request) Request {
				return r.
					Headers(map[string]string{"Accept": "application/json", "X-A": "1"}, false).
					Headers(map[string]string{"X-A": "2", "X-B": "3"}, false)
			},
			expected: map[string]string{"Accept": "application/json", "X-A": "2", "X-B": "3"},
		},
		{
			name: "overwrite replaces the whole map",
			build: func(r Request) Request {
				return r.
					Headers(map[string]string{"Accept": "application/json"}, false).
					Headers(map[string]string{"X-A": "1"}, true)
			},
			expected: map[string]string{"X-A": "1"},
		},
		{
			name: "single header is sugar for merge",
			build: func(r Request) Request {
				return r.
					Header("Accept", "application/json").
					Header("Accept", "application/xml")
			},
			expected: map[string]string{"Accept": "application/xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}

			_, err := tt.build(newTestRequest(transport)).Get("/").Response(context.Background())
			if err != nil {
				t.Fatalf("Error executing request: %v", err)
			}

			if !reflect.DeepEqual(transport.options.Headers, tt.expected) {
				t.Errorf("Expected headers %v, got %v", tt.expected, transport.options.Headers)
			}
		})
	}
}

func TestRequest_QueryReplaces(t *testing.T) {
	transport := &fakeTransport{}

	_, err := newTestRequest(transport).
		Query(map[string]string{"page": "1", "limit": "10"}).
		Query(map[string]string{"q": "john"}).
		Get("/").
		Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	expected := map[string]string{"q": "john"}
	if !reflect.DeepEqual(transport.options.Query, expected) {
		t.Errorf("Expected query %v, got %v", expected, transport.options.Query)
	}
}

func TestRequest_Immutability(t *testing.T) {
	transport := &fakeTransport{}

	base := newTestRequest(transport).Header("Accept", "application/json")
	fork1 := base.Header("X-Fork", "1").Var("id", "1")
	fork2 := base.Header("X-Fork", "2")

	_, err := base.Get("/").Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	expected := map[string]string{"Accept": "application/json"}
	if !reflect.DeepEqual(transport.options.Headers, expected) {
		t.Errorf("Base builder was mutated: expected headers %v, got %v", expected, transport.options.Headers)
	}
	if transport.options.Vars != nil {
		t.Errorf("Base builder was mutated: expected no vars, got %v", transport.options.Vars)
	}

	_, err = fork1.Get("/").Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if transport.options.Headers["X-Fork"] != "1" {
		t.Errorf("Expected fork 1 headers, got %v", transport.options.Headers)
	}

	_, err = fork2.Get("/").Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if transport.options.Headers["X-Fork"] != "2" {
		t.Errorf("Expected fork 2 headers, got %v", transport.options.Headers)
	}
	if transport.options.Vars != nil {
		t.Errorf("Fork 2 inherited vars from fork 1: %v", transport.options.Vars)
	}
}

func TestRequest_CallerMapIsNotAliased(t *testing.T) {
	transport := &fakeTransport{}

	headers := map[string]string{"Accept": "application/json"}
	request := newTestRequest(transport).Headers(headers, false)
	headers["Accept"] = "application/xml"

	_, err := request.Get("/").Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if transport.options.Headers["Accept"] != "application/json" {
		t.Errorf("Builder aliased the caller's map: %v", transport.options.Headers)
	}
}

func TestRequest_Base(t *testing.T) {
	transport := &fakeTransport{}

	_, err := newTestRequest(transport).Base("http://example.com").Get("/").Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if transport.options.BaseURI != "http://example.com" {
		t.Errorf("Expected base uri http://example.com, got %s", transport.options.BaseURI)
	}
}

func TestRequest_Basic(t *testing.T) {
	tests := []struct {
		name     string
		user     string
		password string
		expected []string
	}{
		{
			name:     "user and password",
			user:     "john",
			password: "secret",
			expected: []string{"john", "secret"},
		},
		{
			name:     "empty password keeps only the user",
			user:     "john",
			password: "",
			expected: []string{"john"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &fakeTransport{}

			_, err := newTestRequest(transport).Basic(tt.user, tt.password).Get("/").Response(context.Background())
			if err != nil {
				t.Fatalf("Error executing request: %v", err)
			}

			if !reflect.DeepEqual(transport.options.AuthBasic, tt.expected) {
				t.Errorf("Expected credentials %v, got %v", tt.expected, transport.options.AuthBasic)
			}
		})
	}
}

func TestRequest_Bearer(t *testing.T) {
	transport := &fakeTransport{}

	_, err := newTestRequest(transport).Bearer("token").Get("/").Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if transport.options.AuthBearer != "token" {
		t.Errorf("Expected bearer token, got %s", transport.options.AuthBearer)
	}
}

func TestRequest_Body(t *testing.T) {
	transport := &fakeTransport{}

	_, err := newTestRequest(transport).
		Post("/").
		Body(map[string]any{"name": "John Doe"}).
		Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	body, ok := transport.options.Body.([]byte)
	if !ok {
		t.Fatalf("Expected []byte body, got %T", transport.options.Body)
	}
	if string(body) != `{"name":"John Doe"}` {
		t.Errorf("Expected JSON body, got %s", body)
	}
}

func TestRequest_BodyWithFormatOverride(t *testing.T) {
	transport := &fakeTransport{}

	_, err := newTestRequest(transport).
		Post("/").
		Body(map[string]string{"name": "John Doe"}, WithFormat(serializer.FormatForm)).
		Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	body, _ := transport.options.Body.([]byte)
	if string(body) != "name=John+Doe" {
		t.Errorf("Expected form body, got %s", body)
	}
}

func TestRequest_BodySerializationErrorSurfacesOnResponse(t *testing.T) {
	transport := &fakeTransport{}

	_, err := newTestRequest(transport).
		Post("/").
		Body(map[string]any{"name": "John Doe"}, WithFormat("msgpack")).
		Response(context.Background())
	if !errors.Is(err, serializer.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRequest_RawBody(t *testing.T) {
	transport := &fakeTransport{}

	_, err := newTestRequest(transport).Post("/").RawBody("raw text").Response(context.Background())
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if transport.options.Body != "raw text" {
		t.Errorf("Expected verbatim body, got %v", transport.options.Body)
	}
}

func TestRequest_Response_PanicsWithoutMethodAndPath(t *testing.T) {
	tests := []struct {
		name  string
		build func(r Request) Request
	}{
		{"nothing set", func(r Request) Request { return r }},
		{"only options set", func(r Request) Request { return r.Header("Accept", "application/json") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				recovered := recover()
				if recovered != "requests: method and path were not set" {
					t.Errorf("Expected programming-error panic, got %v", recovered)
				}
			}()

			_, _ = tt.build(newTestRequest(&fakeTransport{})).Response(context.Background())
		})
	}
}

func TestRequest_TransportErrorPropagates(t *testing.T) {
	transportErr := errors.New("connection refused")
	transport := &fakeTransport{err: transportErr}

	_, err := newTestRequest(transport).Get("/").Response(context.Background())
	if !errors.Is(err, transportErr) {
		t.Errorf("Expected transport error, got %v", err)
	}
}
