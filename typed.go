package nbhttp

import (
	"context"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
)

// TypedResponse pairs a decoded value with the response it was decoded from.
// Both remain valid after the dispatch returns.
type TypedResponse[T any] struct {
	// Data is the decoded success body.
	Data T

	// Response is the originating response. Its body has been consumed by
	// decoding; close it when done.
	Response *http.Response
}

// TypedOutcome is the Outcome of a typed dispatch.
//
// Unlike the untyped path, a failure outcome carries no payload: decoding is
// skipped entirely on non-2xx responses, so only StatusCode and SizeBytes
// are populated. This asymmetry with Outcome is deliberate and relied upon
// by harnesses that treat failure payloads as absent.
type TypedOutcome[T any] struct {
	// StatusCode is the response status code, stringified (e.g. "200").
	StatusCode string

	// SizeBytes is RequestSize(request) + ResponseSize(response), computed
	// once per dispatch regardless of success or failure.
	SizeBytes int64

	// Success is true when the status code is in the 2xx range.
	Success bool

	// Payload pairs the decoded value with the response. Nil on failure.
	Payload *TypedResponse[T]
}

// SendTyped dispatches the request with the default config and decodes a
// success body into T.
//
//	outcome, err := nbhttp.SendTyped[User](ctx, client, req)
func SendTyped[T any](ctx context.Context, client Doer, req *Request) (*TypedOutcome[T], error) {
	return SendTypedWith[T](ctx, client, DefaultDispatchConfig(), req)
}

// SendTypedWith follows the same pipeline as SendWith, then decodes the
// response body into T on a success status, using the config's JSON options
// or the process-wide default.
//
// A decode failure is returned as a *DecodeError, a call-level fault
// distinct from an HTTP failure. On a non-2xx status decoding is never
// attempted and the outcome carries no payload.
func SendTypedWith[T any](ctx context.Context, client Doer, cfg *DispatchConfig, req *Request) (*TypedOutcome[T], error) {
	if cfg == nil {
		cfg = DefaultDispatchConfig()
	}

	resp, err := dispatch(ctx, client, cfg, req)
	if err != nil {
		return nil, err
	}

	outcome := &TypedOutcome[T]{
		StatusCode: strconv.Itoa(resp.StatusCode),
		SizeBytes:  RequestSize(req) + ResponseSize(resp),
	}

	if !isSuccessStatus(resp.StatusCode) {
		cfg.Metrics.recordDispatch(req.Method, outcome.StatusCode, false, outcome.SizeBytes)
		return outcome, nil
	}

	var data T
	opts := cfg.jsonOptions()
	if err := json.NewDecoder(resp.Body).DecodeWithOption(&data, opts.Decode...); err != nil {
		return nil, &DecodeError{
			StatusCode: resp.StatusCode,
			URL:        req.URL.String(),
			Err:        err,
		}
	}

	outcome.Success = true
	outcome.Payload = &TypedResponse[T]{Data: data, Response: resp}
	cfg.Metrics.recordDispatch(req.Method, outcome.StatusCode, true, outcome.SizeBytes)
	return outcome, nil
}
