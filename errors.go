package nbhttp

import "fmt"

// VersionParseError reports a malformed protocol version string passed to
// Request.WithVersion. It is returned by the dispatch functions before the
// request is sent.
type VersionParseError struct {
	// Input is the rejected version string.
	Input string
}

func (e *VersionParseError) Error() string {
	return fmt.Sprintf("malformed protocol version %q: expected numeric major.minor", e.Input)
}

// DecodeError reports a JSON decode failure on the typed dispatch path.
//
// It is a call-level fault, distinct from an HTTP failure outcome: the
// response arrived with a success status but its body could not be decoded
// into the requested type.
type DecodeError struct {
	// StatusCode is the HTTP status of the response whose body failed to decode.
	StatusCode int

	// URL is the request target.
	URL string

	// Err is the underlying decoder error.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response body (%d %s): %v", e.StatusCode, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
