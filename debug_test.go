package nbhttp

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurlCommand(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want string
	}{
		{
			name: "given bare GET, then no method flag",
			req:  CreateRequest(http.MethodGet, "https://example.com/users"),
			want: "curl 'https://example.com/users'",
		},
		{
			name: "given POST with headers and body, then includes everything sorted",
			req: CreateRequest(http.MethodPost, "https://example.com/users").
				WithHeader("B-Header", "2").
				WithHeader("A-Header", "1").
				WithBodyText(`{"name":"ada"}`),
			want: "curl -X POST 'https://example.com/users'" +
				" -H 'A-Header: 1' -H 'B-Header: 2'" +
				` -d '{"name":"ada"}'`,
		},
		{
			name: "given body with single quotes, then escapes them",
			req: CreateRequest(http.MethodPut, "https://example.com/x").
				WithBodyText("it's"),
			want: `curl -X PUT 'https://example.com/x' -d 'it'\''s'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurlCommand(tt.req))
		})
	}
}
