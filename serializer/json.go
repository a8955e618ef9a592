package serializer

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONCodec encodes and decodes the "json" format.
type JSONCodec struct{}

// SupportsEncoding reports whether the codec can encode the given format.
func (JSONCodec) SupportsEncoding(format string) bool {
	return format == FormatJSON
}

// Encode marshals v as JSON.
func (JSONCodec) Encode(v any, _ string, _ Context) ([]byte, error) {
	return json.Marshal(v)
}

// SupportsDecoding reports whether the codec can decode the given format.
func (JSONCodec) SupportsDecoding(format string) bool {
	return format == FormatJSON
}

// Decode unmarshals JSON data into v.
func (JSONCodec) Decode(data []byte, v any, _ string, _ Context) error {
	return json.Unmarshal(data, v)
}
