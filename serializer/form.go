package serializer

import (
	"fmt"
	"net/url"
)

// FormEncoder is an encoder-only add-on for the "form" format, producing an
// application/x-www-form-urlencoded body. Values must already be flat
// strings; nested structures are rejected.
//
// Register it explicitly:
//
//	s := serializer.New(serializer.WithEncoder(serializer.FormEncoder{}))
type FormEncoder struct{}

// SupportsEncoding reports whether the encoder can encode the given format.
func (FormEncoder) SupportsEncoding(format string) bool {
	return format == FormatForm
}

// Encode renders v as a percent-encoded, &-joined query string.
func (FormEncoder) Encode(v any, _ string, _ Context) ([]byte, error) {
	values := url.Values{}

	switch data := v.(type) {
	case url.Values:
		values = data
	case map[string][]string:
		values = url.Values(data)
	case map[string]string:
		for key, value := range data {
			values.Set(key, value)
		}
	default:
		return nil, fmt.Errorf("form encoding expects flat string values, got %T", v)
	}

	return []byte(values.Encode()), nil
}
