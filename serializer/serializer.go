package serializer

import (
	"errors"
	"fmt"
)

// Format tokens understood by the built-in codecs.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatForm = "form"
)

// ErrUnsupportedFormat is returned when no registered codec supports the
// requested format.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Context carries codec-specific options through Serialize and Deserialize.
type Context map[string]any

// XMLRootName is the Context key overriding the root element name used by
// the XML codec.
const XMLRootName = "xml_root_name"

// Encoder converts a value into its wire representation for the formats it
// declares support for.
type Encoder interface {
	SupportsEncoding(format string) bool
	Encode(v any, format string, ctx Context) ([]byte, error)
}

// Decoder parses a wire representation into the provided destination for the
// formats it declares support for.
type Decoder interface {
	SupportsDecoding(format string) bool
	Decode(data []byte, v any, format string, ctx Context) error
}

// Serializer dispatches Serialize and Deserialize calls to the first
// registered codec that supports the requested format.
type Serializer struct {
	encoders []Encoder
	decoders []Decoder
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithEncoder registers an additional encoder.
func WithEncoder(e Encoder) Option {
	return func(s *Serializer) {
		s.encoders = append(s.encoders, e)
	}
}

// WithDecoder registers an additional decoder.
func WithDecoder(d Decoder) Option {
	return func(s *Serializer) {
		s.decoders = append(s.decoders, d)
	}
}

// New creates a Serializer with the JSON and XML codecs registered, extended
// by the given options.
func New(opts ...Option) *Serializer {
	s := &Serializer{
		encoders: []Encoder{JSONCodec{}, XMLCodec{}},
		decoders: []Decoder{JSONCodec{}, XMLCodec{}},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Serialize encodes v in the given format.
func (s *Serializer) Serialize(v any, format string, ctx Context) ([]byte, error) {
	for _, e := range s.encoders {
		if e.SupportsEncoding(format) {
			return e.Encode(v, format, ctx)
		}
	}

	return nil, fmt.Errorf("%w: no encoder for %q", ErrUnsupportedFormat, format)
}

// Deserialize decodes data in the given format into v, which must be a
// pointer to the destination value.
func (s *Serializer) Deserialize(data []byte, v any, format string, ctx Context) error {
	for _, d := range s.decoders {
		if d.SupportsDecoding(format) {
			return d.Decode(data, v, format, ctx)
		}
	}

	return fmt.Errorf("%w: no decoder for %q", ErrUnsupportedFormat, format)
}
