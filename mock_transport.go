package nbhttp

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
)

// MockTransport is a configurable http.RoundTripper for testing dispatch
// behavior without a network. It stubs responses per path or predicate and
// records every request it sees.
//
//	mock := nbhttp.NewMockTransport().StubResponse(200, `{"ok":true}`)
//	outcome, err := nbhttp.Send(ctx, mock.Client(), req)
type MockTransport struct {
	mu          sync.RWMutex
	stubs       []stub
	defaultResp *responseTemplate
	defaultErr  error
	requests    []*http.Request
}

type stub struct {
	matcher  func(*http.Request) bool
	response *responseTemplate
	err      error
}

// responseTemplate builds a fresh response per request, so one stub can
// serve any number of calls, each with its own readable body.
type responseTemplate struct {
	statusCode int
	body       string
	headers    http.Header
}

func (t *responseTemplate) build(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode:    t.statusCode,
		Status:        http.StatusText(t.statusCode),
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        t.headers.Clone(),
		Body:          io.NopCloser(bytes.NewReader([]byte(t.body))),
		ContentLength: int64(len(t.body)),
		Request:       req,
	}
}

// NewMockTransport creates an empty MockTransport.
func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// Client returns an *http.Client backed by this transport.
func (m *MockTransport) Client() *http.Client {
	return &http.Client{Transport: m}
}

// StubResponse stubs all requests to return the given status and body.
func (m *MockTransport) StubResponse(statusCode int, body string) *MockTransport {
	return m.StubResponseHeaders(statusCode, body, nil)
}

// StubResponseHeaders stubs all requests to return the given status, body,
// and headers.
func (m *MockTransport) StubResponseHeaders(statusCode int, body string, headers http.Header) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultResp = newTemplate(statusCode, body, headers)
	return m
}

// StubJSON stubs all requests to return the given status with v encoded as
// a JSON body and a matching content type.
func (m *MockTransport) StubJSON(statusCode int, v any) *MockTransport {
	data, err := json.Marshal(v)
	if err != nil {
		return m.StubError(err)
	}
	headers := http.Header{"Content-Type": []string{"application/json"}}
	return m.StubResponseHeaders(statusCode, string(data), headers)
}

// StubError stubs all requests to fail with the given transport error.
func (m *MockTransport) StubError(err error) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultErr = err
	return m
}

// StubPath stubs requests for the given path. First matching stub wins.
func (m *MockTransport) StubPath(path string, statusCode int, body string) *MockTransport {
	return m.StubFunc(func(req *http.Request) bool {
		return req.URL.Path == path
	}, statusCode, body)
}

// StubFunc stubs requests matching the predicate.
func (m *MockTransport) StubFunc(matcher func(*http.Request) bool, statusCode int, body string) *MockTransport {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stubs = append(m.stubs, stub{
		matcher:  matcher,
		response: newTemplate(statusCode, body, nil),
	})
	return m
}

// RoundTrip implements http.RoundTripper.
func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.stubs {
		if s.matcher(req) {
			if s.err != nil {
				return nil, s.err
			}
			return s.response.build(req), nil
		}
	}
	if m.defaultErr != nil {
		return nil, m.defaultErr
	}
	if m.defaultResp != nil {
		return m.defaultResp.build(req), nil
	}
	return nil, errors.New("no stub found for request: " + req.Method + " " + req.URL.String())
}

// Requests returns all requests made through this transport.
func (m *MockTransport) Requests() []*http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*http.Request{}, m.requests...)
}

// RequestCount returns the number of requests made.
func (m *MockTransport) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, or nil if none.
func (m *MockTransport) LastRequest() *http.Request {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Reset clears all recorded requests and stubs.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.stubs = nil
	m.defaultResp = nil
	m.defaultErr = nil
}

func newTemplate(statusCode int, body string, headers http.Header) *responseTemplate {
	if headers == nil {
		headers = make(http.Header)
	}
	return &responseTemplate{
		statusCode: statusCode,
		body:       body,
		headers:    headers,
	}
}
