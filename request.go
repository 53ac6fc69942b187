package nbhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Request wraps *http.Request with chained in-place mutators for building
// a request before dispatch.
//
// Create a Request using CreateRequest():
//
//	req := nbhttp.CreateRequest(http.MethodPost, "https://api.example.com/users").
//	    WithHeader("Authorization", "Bearer "+token).
//	    WithJSONBody(user)
//
// Every mutator returns the same *Request; no copies are made. The request
// is owned exclusively by the caller until it is passed to Send, SendWith,
// SendTyped or SendTypedWith.
//
// Mutators never fail mid-chain. The first error encountered while building
// (malformed URL, malformed version string, JSON marshal failure) is
// remembered and surfaced by the dispatch functions before anything is sent.
type Request struct {
	// Request embeds the standard http.Request.
	// All http.Request fields are accessible directly.
	*http.Request

	// buildErr holds the first error recorded by a mutator.
	// Surfaced by Send/SendTyped before dispatch.
	buildErr error
}

// CreateRequest constructs a request for the given method and URL with no
// headers, no body, and the default protocol version (HTTP/1.1).
//
// A malformed URL does not fail the call; the error is recorded and returned
// by the dispatch functions before the request is sent, so the fluent chain
// is always safe to continue.
func CreateRequest(method, rawURL string) *Request {
	req, err := http.NewRequest(method, rawURL, nil)
	if err != nil {
		return &Request{
			Request: &http.Request{
				Method: method,
				URL:    &url.URL{},
				Header: make(http.Header),
			},
			buildErr: fmt.Errorf("create request %s %q: %w", method, rawURL, err),
		}
	}
	return &Request{Request: req}
}

// WithHeader appends a header value.
//
// Header syntax is not validated and names are not canonicalized or
// deduplicated, matching the permissive behavior of the transport: malformed
// names and values are accepted silently, and repeated names accumulate
// values in order.
func (r *Request) WithHeader(name, value string) *Request {
	r.Header[name] = append(r.Header[name], value)
	return r
}

// HeaderPair is a name/value pair accepted by WithHeaders.
type HeaderPair struct {
	Name  string
	Value string
}

// WithHeaders appends every pair in order. See WithHeader.
func (r *Request) WithHeaders(headers []HeaderPair) *Request {
	for _, h := range headers {
		r.WithHeader(h.Name, h.Value)
	}
	return r
}

// WithVersion sets the protocol version from a numeric "major.minor" string
// such as "1.1" or "2.0".
//
// A malformed version string records a *VersionParseError that is surfaced
// by the dispatch functions before the request is sent.
func (r *Request) WithVersion(version string) *Request {
	major, minor, ok := parseVersion(version)
	if !ok {
		if r.buildErr == nil {
			r.buildErr = &VersionParseError{Input: version}
		}
		return r
	}
	r.Proto = "HTTP/" + version
	r.ProtoMajor = major
	r.ProtoMinor = minor
	return r
}

// parseVersion parses a numeric "major.minor" protocol version.
func parseVersion(version string) (major, minor int, ok bool) {
	majorStr, minorStr, found := strings.Cut(version, ".")
	if !found {
		return 0, 0, false
	}
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(minorStr)
	if err != nil || minor < 0 {
		return 0, 0, false
	}
	return major, minor, true
}

// WithBody replaces any existing body with the given content and declares
// its length.
func (r *Request) WithBody(content []byte) *Request {
	r.Body = io.NopCloser(bytes.NewReader(content))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(content)), nil
	}
	r.ContentLength = int64(len(content))
	return r
}

// WithBodyText replaces any existing body with the UTF-8 encoding of the
// given text.
func (r *Request) WithBodyText(text string) *Request {
	return r.WithBody([]byte(text))
}

// WithJSONBody serializes v to JSON using the process-wide default options,
// sets the body to the UTF-8 encoded text, and sets the content type to
// application/json.
//
// A marshal failure is recorded and surfaced by the dispatch functions
// before the request is sent.
func (r *Request) WithJSONBody(v any) *Request {
	return r.WithJSONBodyOptions(v, nil)
}

// WithJSONBodyOptions is WithJSONBody with explicit JSON options.
// A nil opts falls back to the process-wide default.
func (r *Request) WithJSONBodyOptions(v any, opts *JSONOptions) *Request {
	if opts == nil {
		opts = DefaultJSONOptions()
	}
	data, err := json.MarshalWithOption(v, opts.Encode...)
	if err != nil {
		if r.buildErr == nil {
			r.buildErr = fmt.Errorf("encode json body: %w", err)
		}
		return r
	}
	r.WithBody(data)
	r.Header.Set("Content-Type", "application/json")
	return r
}
