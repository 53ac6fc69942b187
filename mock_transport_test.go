package nbhttp

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTransport_Stubbing(t *testing.T) {
	tests := []struct {
		name       string
		configure  func(*MockTransport)
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name: "given default stub, then all requests match",
			configure: func(m *MockTransport) {
				m.StubResponse(http.StatusTeapot, "tea")
			},
			path:       "/anything",
			wantStatus: http.StatusTeapot,
			wantBody:   "tea",
		},
		{
			name: "given path stub, then first match wins",
			configure: func(m *MockTransport) {
				m.StubPath("/a", http.StatusOK, "a").
					StubPath("/a", http.StatusNotFound, "shadowed").
					StubResponse(http.StatusInternalServerError, "default")
			},
			path:       "/a",
			wantStatus: http.StatusOK,
			wantBody:   "a",
		},
		{
			name: "given predicate stub, then it matches by request",
			configure: func(m *MockTransport) {
				m.StubFunc(func(req *http.Request) bool {
					return req.URL.Path == "/pred"
				}, http.StatusCreated, "made")
			},
			path:       "/pred",
			wantStatus: http.StatusCreated,
			wantBody:   "made",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockTransport()
			tt.configure(mock)

			req, err := http.NewRequest(http.MethodGet, "https://example.com"+tt.path, nil)
			require.NoError(t, err)

			resp, err := mock.RoundTrip(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestMockTransport_ReusableStub(t *testing.T) {
	mock := NewMockTransport().StubResponse(http.StatusOK, "same body")

	for i := 0; i < 3; i++ {
		req := CreateRequest(http.MethodGet, "https://example.com")
		outcome, err := Send(context.Background(), mock.Client(), req)
		require.NoError(t, err)

		body, err := io.ReadAll(outcome.Payload.Body)
		require.NoError(t, err)
		assert.Equal(t, "same body", string(body))
	}

	assert.Equal(t, 3, mock.RequestCount())
}

func TestMockTransport_Recording(t *testing.T) {
	mock := NewMockTransport().StubResponse(http.StatusOK, "")

	_, err := Send(context.Background(), mock.Client(),
		CreateRequest(http.MethodGet, "https://example.com/first"))
	require.NoError(t, err)
	_, err = Send(context.Background(), mock.Client(),
		CreateRequest(http.MethodPost, "https://example.com/second"))
	require.NoError(t, err)

	require.Len(t, mock.Requests(), 2)
	assert.Equal(t, "/second", mock.LastRequest().URL.Path)

	mock.Reset()
	assert.Zero(t, mock.RequestCount())
	assert.Nil(t, mock.LastRequest())
}

func TestMockTransport_NoStub(t *testing.T) {
	mock := NewMockTransport()

	req, err := http.NewRequest(http.MethodGet, "https://example.com/missing", nil)
	require.NoError(t, err)

	resp, err := mock.RoundTrip(req)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "no stub found")
}

func TestMockTransport_StubError(t *testing.T) {
	mock := NewMockTransport().StubError(assert.AnError)

	req, err := http.NewRequest(http.MethodGet, "https://example.com", nil)
	require.NoError(t, err)

	resp, rtErr := mock.RoundTrip(req)
	assert.Nil(t, resp)
	assert.ErrorIs(t, rtErr, assert.AnError)
}
