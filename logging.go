package nbhttp

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// logRequest emits one structured debug entry for the request, tagged with
// the config's trace id. No-op when no logger is configured.
//
// The body is fully read to include it as text, then restored as a
// re-readable reader so the actual dispatch sees the same content. Any fault
// while reading or formatting is contained and reported through the logger
// itself; it never reaches the caller.
func logRequest(cfg *DispatchConfig, req *Request) {
	if cfg.Logger == nil {
		return
	}
	defer containLoggingFault(cfg, "request logging failed")

	body, err := materializeRequestBody(req.Request)
	if err != nil {
		reportLoggingFault(cfg, "request logging failed", err)
		return
	}

	cfg.Logger.Debug().
		Str("trace_id", cfg.TraceID).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Str("version", req.Proto).
		Interface("headers", req.Header).
		Str("body", body).
		Str("curl", CurlCommand(req)).
		Msg("HTTP request")
}

// logResponse is the response-side counterpart of logRequest.
func logResponse(cfg *DispatchConfig, resp *http.Response) {
	if cfg.Logger == nil {
		return
	}
	defer containLoggingFault(cfg, "response logging failed")

	body, err := materializeResponseBody(resp)
	if err != nil {
		reportLoggingFault(cfg, "response logging failed", err)
		return
	}

	cfg.Logger.Debug().
		Str("trace_id", cfg.TraceID).
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Str("version", resp.Proto).
		Interface("headers", resp.Header).
		Str("body", body).
		Msg("HTTP response")
}

// containLoggingFault recovers a panic raised while formatting a log entry
// and reports it best-effort. Logging must never abort or alter a dispatch.
func containLoggingFault(cfg *DispatchConfig, msg string) {
	if r := recover(); r != nil {
		reportLoggingFault(cfg, msg, fmt.Errorf("panic: %v", r))
	}
}

// reportLoggingFault reports a contained logging fault through the same
// logger if it is still usable. WithLevel is used instead of Fatal so zerolog
// does not terminate the process.
func reportLoggingFault(cfg *DispatchConfig, msg string, err error) {
	defer func() {
		// The logger's sink may be the thing that is broken.
		_ = recover()
	}()
	cfg.Logger.WithLevel(zerolog.FatalLevel).
		Str("trace_id", cfg.TraceID).
		Err(err).
		Msg(msg)
}

// materializeRequestBody drains the request body into memory and re-arms it
// so the transport still sends the full content. Returns the body as text.
func materializeRequestBody(req *http.Request) (string, error) {
	if req.Body == nil {
		return "", nil
	}
	data, err := io.ReadAll(req.Body)
	closeErr := req.Body.Close()
	if err != nil {
		return "", err
	}
	if closeErr != nil {
		return "", closeErr
	}
	req.Body = io.NopCloser(bytes.NewReader(data))
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return string(data), nil
}

// materializeResponseBody drains the response body into memory and re-arms
// it so the caller can still consume it. Returns the body as text.
func materializeResponseBody(resp *http.Response) (string, error) {
	if resp.Body == nil {
		return "", nil
	}
	data, err := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if err != nil {
		return "", err
	}
	if closeErr != nil {
		return "", closeErr
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return string(data), nil
}
