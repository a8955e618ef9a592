// Package serializer converts values to and from wire formats through a
// small capability-based codec registry.
//
// The built-in codecs cover JSON (json-iterator) and XML (encoding/xml for
// typed values, mxj for generic maps). FormEncoder extends the registry with
// application/x-www-form-urlencoded encoding.
//
// Basic Usage:
//
//	s := serializer.New(serializer.WithEncoder(serializer.FormEncoder{}))
//
//	body, err := s.Serialize(user, serializer.FormatJSON, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var decoded User
//	if err := s.Deserialize(body, &decoded, serializer.FormatJSON, nil); err != nil {
//	    log.Fatal(err)
//	}
//
// Codec Options:
//
// A Context map passes options to individual codecs, e.g. the XML root
// element name:
//
//	s.Serialize(user, serializer.FormatXML, serializer.Context{
//	    serializer.XMLRootName: "user",
//	})
package serializer
