package nbhttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
)

// Outcome is the uniform result of a dispatched HTTP call, for consumption
// by a load-testing harness.
//
// An Outcome is produced only when a response was received. Transport faults
// (connection refused, timeout, cancellation) are returned as errors from
// the dispatch functions instead, so they stay distinct from HTTP-level
// failures.
type Outcome struct {
	// StatusCode is the response status code, stringified (e.g. "200").
	StatusCode string

	// SizeBytes is RequestSize(request) + ResponseSize(response), computed
	// once per dispatch regardless of success or failure.
	SizeBytes int64

	// Success is true when the status code is in the 2xx range.
	Success bool

	// Payload is the received response. Ownership transfers to the caller:
	// the body must be consumed or closed after the Outcome is returned.
	Payload *http.Response
}

// Send dispatches the request with the default config: full-body completion,
// no logger, no metrics.
func Send(ctx context.Context, client Doer, req *Request) (*Outcome, error) {
	return SendWith(ctx, client, DefaultDispatchConfig(), req)
}

// SendWith dispatches the request through the given transport exactly once
// and classifies the result.
//
// Sequence: surface any deferred build error, log the request if a logger is
// configured, submit through the transport with the configured completion
// behavior, log the response, compute the combined payload size, classify
// by status. A transport error (including ctx cancellation) is returned
// as-is; it is a fault of the call, not a Failure outcome.
func SendWith(ctx context.Context, client Doer, cfg *DispatchConfig, req *Request) (*Outcome, error) {
	if cfg == nil {
		cfg = DefaultDispatchConfig()
	}

	resp, err := dispatch(ctx, client, cfg, req)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		StatusCode: strconv.Itoa(resp.StatusCode),
		SizeBytes:  RequestSize(req) + ResponseSize(resp),
		Success:    isSuccessStatus(resp.StatusCode),
		Payload:    resp,
	}
	cfg.Metrics.recordDispatch(req.Method, outcome.StatusCode, outcome.Success, outcome.SizeBytes)
	return outcome, nil
}

// dispatch performs the shared send pipeline up to and including response
// logging. Both the untyped and typed paths build on it.
func dispatch(ctx context.Context, client Doer, cfg *DispatchConfig, req *Request) (*http.Response, error) {
	if req.buildErr != nil {
		return nil, req.buildErr
	}

	logRequest(cfg, req)

	cfg.Metrics.dispatchStarted(req.Method)
	resp, err := client.Do(req.Request.WithContext(ctx))
	cfg.Metrics.dispatchFinished(req.Method)
	if err != nil {
		return nil, err
	}

	if cfg.Completion == ResponseContentRead {
		if err := bufferResponseBody(resp); err != nil {
			return nil, err
		}
	}

	logResponse(cfg, resp)
	return resp, nil
}

// isSuccessStatus reports whether the status code classifies as Success.
func isSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode <= 299
}

// bufferResponseBody reads the full body into memory and replaces it with a
// re-readable reader. When the declared length was unknown, the buffered
// length becomes the declared length so size accounting can use it.
func bufferResponseBody(resp *http.Response) error {
	if resp.Body == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}
	resp.Body = io.NopCloser(bytes.NewReader(data))
	if resp.ContentLength < 0 {
		resp.ContentLength = int64(len(data))
	}
	return nil
}
