package requests

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/clbanning/mxj/v2"
	"github.com/tidwall/gjson"
)

// Client is the default Transport over net/http. It expands {name} path
// placeholders, resolves the path against the base URI, and applies query,
// header, and auth options. It adds no retries, caching, or logging.
type Client struct {
	httpClient *http.Client
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a new transport with the given options.
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the overall request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// Request implements Transport.
func (c *Client) Request(ctx context.Context, method, path string, options Options) (RawResponse, error) {
	reqURL, err := buildURL(path, options)
	if err != nil {
		return nil, err
	}

	body, err := bodyReader(options.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, err
	}

	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}

	if len(options.AuthBasic) > 0 {
		cred := strings.Join(options.AuthBasic, ":")
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(cred)))
	}
	if options.AuthBearer != "" {
		req.Header.Set("Authorization", "Bearer "+options.AuthBearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	return &rawResponse{
		resp: resp,
		info: Info{Method: method, URL: reqURL},
	}, nil
}

func buildURL(path string, options Options) (string, error) {
	path = expandPath(path, options.Vars)

	reqURL, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse path: %w", err)
	}

	// An absolute path URL wins over the base URI.
	if !reqURL.IsAbs() && options.BaseURI != "" {
		base, err := url.Parse(options.BaseURI)
		if err != nil {
			return "", fmt.Errorf("parse base uri: %w", err)
		}

		if base.Path == "" {
			base.Path = reqURL.Path
		} else {
			base.Path = strings.TrimRight(base.Path, "/") + "/" + strings.TrimLeft(reqURL.Path, "/")
		}
		base.RawQuery = reqURL.RawQuery

		reqURL = base
	}

	query := reqURL.Query()
	for key, value := range options.Query {
		query.Set(key, value)
	}
	reqURL.RawQuery = query.Encode()

	return reqURL.String(), nil
}

func expandPath(path string, vars map[string]string) string {
	if len(vars) == 0 {
		return path
	}

	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", url.PathEscape(value))
	}

	return strings.NewReplacer(pairs...).Replace(path)
}

func bodyReader(body any) (io.Reader, error) {
	switch body := body.(type) {
	case nil:
		return nil, nil
	case string:
		return strings.NewReader(body), nil
	case []byte:
		return bytes.NewReader(body), nil
	case io.Reader:
		return body, nil
	case func() io.Reader:
		return body(), nil
	case [][]byte:
		readers := make([]io.Reader, len(body))
		for i, chunk := range body {
			readers[i] = bytes.NewReader(chunk)
		}

		return io.MultiReader(readers...), nil
	default:
		return nil, fmt.Errorf("unsupported body type %T", body)
	}
}

type rawResponse struct {
	resp *http.Response
	info Info

	body []byte
	read bool
}

func (r *rawResponse) StatusCode() int {
	return r.resp.StatusCode
}

func (r *rawResponse) Headers() http.Header {
	return r.resp.Header
}

func (r *rawResponse) Info() Info {
	return r.info
}

func (r *rawResponse) Content() ([]byte, error) {
	if r.read {
		return r.body, nil
	}

	defer r.resp.Body.Close()
	body, err := io.ReadAll(r.resp.Body)
	if err != nil {
		return nil, err
	}

	r.body = body
	r.read = true

	return body, nil
}

func (r *rawResponse) Decode() (any, error) {
	body, err := r.Content()
	if err != nil {
		return nil, err
	}

	contentType := r.resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediaType
	}

	switch contentType {
	case "application/json":
		if !gjson.ValidBytes(body) {
			return nil, fmt.Errorf("decode response: invalid json")
		}

		return gjson.ParseBytes(body).Value(), nil
	case "application/xml", "text/xml":
		m, err := mxj.NewMapXml(body)
		if err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		return map[string]any(m), nil
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		decoded := make(map[string]any, len(values))
		for key := range values {
			decoded[key] = values.Get(key)
		}

		return decoded, nil
	default:
		return nil, fmt.Errorf("decode response: unsupported content type %q", contentType)
	}
}

func (r *rawResponse) Stream(ctx context.Context, timeout time.Duration) <-chan Chunk {
	out := make(chan Chunk)

	go func() {
		defer close(out)

		// A body buffered by an earlier Content call replays as one chunk.
		if r.read {
			select {
			case out <- Chunk{Data: r.body, Last: true}:
			case <-ctx.Done():
			}

			return
		}

		reads := readBody(ctx, r.resp.Body)
		for {
			var timeoutC <-chan time.Time
			if timeout > 0 {
				timeoutC = time.After(timeout)
			}

			select {
			case chunk, ok := <-reads:
				if !ok {
					return
				}

				select {
				case out <- chunk:
				case <-ctx.Done():
					return
				}

				if chunk.Last || chunk.Err != nil {
					return
				}
			case <-timeoutC:
				select {
				case out <- Chunk{Timeout: true}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func readBody(ctx context.Context, body io.ReadCloser) <-chan Chunk {
	reads := make(chan Chunk)

	go func() {
		defer close(reads)
		defer body.Close()

		buf := make([]byte, 32*1024)
		for {
			n, err := body.Read(buf)

			var chunk Chunk
			if n > 0 {
				chunk.Data = append([]byte(nil), buf[:n]...)
			}
			switch {
			case errors.Is(err, io.EOF):
				chunk.Last = true
			case err != nil:
				chunk.Err = err
			}

			select {
			case reads <- chunk:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return reads
}
