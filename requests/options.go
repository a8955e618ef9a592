package requests

import "maps"

// Options is the configuration handed to the Transport alongside method and
// path. The named fields cover the options this package manages itself;
// Extra passes arbitrary transport-specific settings through verbatim.
type Options struct {
	// BaseURI is resolved against the request path by the transport.
	BaseURI string

	// Headers are request headers. Merged across builder calls.
	Headers map[string]string

	// Query are URL query parameters. Replaced wholesale on every Query call.
	Query map[string]string

	// Vars resolve {name} placeholders in the request path.
	Vars map[string]string

	// Body is the request body: string, []byte, io.Reader, func() io.Reader,
	// or [][]byte chunks.
	Body any

	// AuthBasic is the Basic credential pair: [user] or [user, password].
	AuthBasic []string

	// AuthBearer is a Bearer token.
	AuthBearer string

	// Extra holds transport-specific settings this package does not
	// interpret.
	Extra map[string]any
}

func (o Options) clone() Options {
	o.Headers = maps.Clone(o.Headers)
	o.Query = maps.Clone(o.Query)
	o.Vars = maps.Clone(o.Vars)
	o.Extra = maps.Clone(o.Extra)
	if o.AuthBasic != nil {
		o.AuthBasic = append([]string(nil), o.AuthBasic...)
	}

	return o
}

// mergeMap implements the shared vars/headers merge rule: a shallow merge
// with new keys winning, or a full replacement when overwrite is set. The
// result never aliases dst or src.
func mergeMap(dst, src map[string]string, overwrite bool) map[string]string {
	if overwrite {
		return maps.Clone(src)
	}

	merged := maps.Clone(dst)
	if merged == nil {
		merged = make(map[string]string, len(src))
	}
	maps.Copy(merged, src)

	return merged
}
