package nbhttp

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// CurlCommand returns a cURL command equivalent to the built request, for
// reproducing a failing call from the command line.
//
// The body is included only when it can be re-read (bodies set through
// WithBody, WithBodyText, or WithJSONBody always can). Sensitive headers are
// not redacted.
func CurlCommand(req *Request) string {
	var parts []string

	parts = append(parts, "curl")
	if req.Method != http.MethodGet {
		parts = append(parts, "-X", req.Method)
	}
	parts = append(parts, fmt.Sprintf("'%s'", req.URL.String()))

	// Sorted for stable output.
	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range req.Header[name] {
			parts = append(parts, "-H", fmt.Sprintf("'%s: %s'", name, v))
		}
	}

	if body := rereadBody(req); len(body) > 0 {
		escaped := strings.ReplaceAll(string(body), "'", "'\\''")
		parts = append(parts, "-d", fmt.Sprintf("'%s'", escaped))
	}

	return strings.Join(parts, " ")
}

// rereadBody returns the request body without consuming it, or nil when the
// body is absent or not re-readable.
func rereadBody(req *Request) []byte {
	if req.GetBody == nil {
		return nil
	}
	rc, err := req.GetBody()
	if err != nil {
		return nil
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return data
}
