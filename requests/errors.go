package requests

import (
	"fmt"
	"strconv"
	"strings"
)

// StatusCodeError is returned by Response.CheckStatus when the observed
// status code is not in the expected set. It carries the expected codes and
// the response itself so the caller can branch on the actual status or
// deserialize an error payload from the same response.
type StatusCodeError struct {
	// Expected is the caller's expected status sequence, verbatim.
	Expected []int

	// Response is the response that failed validation.
	Response *Response
}

func (e *StatusCodeError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, status := range e.Expected {
		expected[i] = strconv.Itoa(status)
	}

	info := e.Response.raw.Info()

	return fmt.Sprintf(
		"%d returned for %s %s, expected %s",
		e.Response.Status(), info.Method, info.URL, strings.Join(expected, ", "),
	)
}
