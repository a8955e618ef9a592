package echo

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/clbanning/mxj/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler reflects every request back as JSON or XML, selected by the Accept
// header. Two request headers control the response: X-Status-Code overrides
// the status (default 200) and X-Response-Shape: array wraps the echoed
// object in a single-element list.
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates an echo handler logging through the given logger.
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{log: log}
}

type echoed struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Headers map[string]string `json:"headers,omitempty"`
	Query   map[string]string `json:"query,omitempty"`
	Body    any               `json:"body,omitempty"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	statusCode, err := statusCode(r)
	if err != nil {
		h.writeError(http.StatusBadRequest, err, w, r)

		return
	}

	body, err := parseBody(r)
	if err != nil {
		h.writeError(http.StatusBadRequest, err, w, r)

		return
	}

	headers := map[string]string{}
	for key := range r.Header {
		// Content-Length and the X- control headers are internal.
		if key == "Content-Length" || strings.HasPrefix(key, "X-") {
			continue
		}

		headers[key] = r.Header.Get(key)
	}

	query := map[string]string{}
	for key := range r.URL.Query() {
		query[key] = r.URL.Query().Get(key)
	}

	var resp any
	resp = echoed{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: headers,
		Query:   query,
		Body:    body,
	}
	if r.Header.Get("X-Response-Shape") == "array" {
		resp = []any{resp}
	}

	h.writeResponse(statusCode, resp, w, r)
}

func statusCode(r *http.Request) (int, error) {
	status := r.Header.Get("X-Status-Code")
	if status == "" {
		return http.StatusOK, nil
	}

	statusCode, err := strconv.Atoi(status)
	if err != nil {
		return 0, fmt.Errorf("parse status code: %w", err)
	}

	return statusCode, nil
}

func parseBody(r *http.Request) (any, error) {
	var body any

	switch r.Header.Get("Content-Type") {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("parse json body: %w", err)
		}
	case "application/xml":
		parsed, err := mxj.NewMapXmlReader(r.Body)
		if err != nil {
			return nil, fmt.Errorf("parse xml body: %w", err)
		}

		body = parsed
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("parse form body: %w", err)
		}

		parsed := map[string]string{}
		for key := range r.Form {
			parsed[key] = r.Form.Get(key)
		}
		body = parsed
	}

	return body, nil
}

func (h *Handler) writeResponse(statusCode int, resp any, w http.ResponseWriter, r *http.Request) {
	accept := r.Header.Get("Accept")
	if accept != "application/json" && accept != "application/xml" {
		h.writeError(http.StatusBadRequest, fmt.Errorf("unsupported accept: %s", accept), w, r)

		return
	}

	w.Header().Add("Content-Type", accept)
	w.WriteHeader(statusCode)

	var encode func(any) error
	switch accept {
	case "application/json":
		encode = json.NewEncoder(w).Encode
	case "application/xml":
		encode = func(v any) error {
			// Round-trip through JSON so struct tags decide the element
			// names, then let mxj render the map as XML.
			buf := bytes.Buffer{}
			if err := json.NewEncoder(&buf).Encode(v); err != nil {
				return fmt.Errorf("encode to json: %w", err)
			}

			var m map[string]any
			if err := json.NewDecoder(&buf).Decode(&m); err != nil {
				return fmt.Errorf("decode from json: %w", err)
			}

			if err := mxj.Map(m).XmlWriter(w); err != nil {
				return fmt.Errorf("encode to xml: %w", err)
			}

			return nil
		}
	}

	if err := encode(resp); err != nil {
		h.log.Error().Err(err).Msg("encode response")

		return
	}

	h.log.Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", statusCode).
		Msg("handled")
}

func (h *Handler) writeError(statusCode int, err error, w http.ResponseWriter, r *http.Request) {
	resp := struct {
		XMLName xml.Name `json:"-" xml:"response"`
		Error   string   `json:"error" xml:"error"`
	}{Error: err.Error()}

	var encode func(any) error
	if r.Header.Get("Accept") == "application/xml" {
		w.Header().Add("Content-Type", "application/xml")
		encode = xml.NewEncoder(w).Encode
	} else {
		w.Header().Add("Content-Type", "application/json")
		encode = json.NewEncoder(w).Encode
	}

	w.WriteHeader(statusCode)

	if encodeErr := encode(resp); encodeErr != nil {
		h.log.Error().Err(encodeErr).Msg("encode error response")

		return
	}

	h.log.Info().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", statusCode).
		Msg("handled error")
}
