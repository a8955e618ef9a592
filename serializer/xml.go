package serializer

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/clbanning/mxj/v2"
)

const defaultXMLRoot = "response"

// XMLCodec encodes and decodes the "xml" format. Generic maps go through
// mxj, typed values through encoding/xml. The root element name is taken
// from the XMLRootName context key and defaults to "response".
type XMLCodec struct{}

// SupportsEncoding reports whether the codec can encode the given format.
func (XMLCodec) SupportsEncoding(format string) bool {
	return format == FormatXML
}

// Encode marshals v as an XML document rooted at the configured name.
func (XMLCodec) Encode(v any, _ string, ctx Context) ([]byte, error) {
	root := defaultXMLRoot
	if name, ok := ctx[XMLRootName].(string); ok && name != "" {
		root = name
	}

	if m, ok := asMap(v); ok {
		b, err := mxj.Map(m).Xml(root)
		if err != nil {
			return nil, fmt.Errorf("encode xml map: %w", err)
		}

		return b, nil
	}

	buf := bytes.Buffer{}
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeElement(v, start); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}

	return buf.Bytes(), nil
}

// SupportsDecoding reports whether the codec can decode the given format.
func (XMLCodec) SupportsDecoding(format string) bool {
	return format == FormatXML
}

// Decode unmarshals XML data into v. A *map[string]any destination receives
// the generic mxj mapping, anything else goes through encoding/xml.
func (XMLCodec) Decode(data []byte, v any, _ string, _ Context) error {
	if out, ok := v.(*map[string]any); ok {
		m, err := mxj.NewMapXml(data)
		if err != nil {
			return fmt.Errorf("decode xml map: %w", err)
		}

		*out = m

		return nil
	}

	return xml.Unmarshal(data, v)
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case mxj.Map:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for key, value := range m {
			out[key] = value
		}

		return out, true
	}

	return nil, false
}
