// Package nbhttp is an instrumentation layer over a plain HTTP client,
// built for load-testing harnesses that need a uniform success/failure
// result per call together with payload size accounting.
//
// # Features
//
//   - Fluent request builder with chained in-place mutators
//   - Uniform Outcome classification (2xx → success, everything else → failure)
//   - Payload size accounting (header characters + declared content length)
//   - Optional structured request/response logging with trace-id correlation
//   - Typed dispatch with generic JSON decoding of success bodies
//   - Optional Prometheus metrics for dispatched calls
//
// # Quick Start
//
// Build a request and dispatch it through any *http.Client:
//
//	req := nbhttp.CreateRequest(http.MethodGet, "https://api.example.com/users").
//	    WithHeader("Accept", "application/json")
//
//	outcome, err := nbhttp.Send(ctx, http.DefaultClient, req)
//	if err != nil {
//	    return err // transport fault, not an HTTP failure
//	}
//	if outcome.Success {
//	    fmt.Println(outcome.StatusCode, outcome.SizeBytes)
//	}
//
// # Typed Dispatch
//
// Decode a success body into a caller-specified type:
//
//	req := nbhttp.CreateRequest(http.MethodGet, url)
//	outcome, err := nbhttp.SendTyped[User](ctx, client, req)
//	if err != nil {
//	    return err // transport or decode fault
//	}
//	if outcome.Success {
//	    user := outcome.Payload.Data
//	}
//
// # Per-Call Configuration
//
// SendWith and SendTypedWith accept a DispatchConfig built from functional
// options:
//
//	cfg := nbhttp.NewDispatchConfig(
//	    nbhttp.WithLogger(&logger),                       // debug logging + trace id
//	    nbhttp.WithCompletion(nbhttp.ResponseHeadersRead), // don't buffer body
//	    nbhttp.WithMetrics(collector),
//	)
//	outcome, err := nbhttp.SendWith(ctx, client, cfg, req)
//
// # Error Model
//
// Callers see exactly one of:
//
//   - an Outcome value: a response was received; Success reflects the 2xx
//     status range, SizeBytes is always computed
//   - an error: everything outside the HTTP-status model, such as connection
//     failures, context cancellation, request build errors, and (on the typed
//     path) JSON decode failures
//
// Logging is best-effort: faults while reading or formatting a body for log
// output are contained and never alter the returned Outcome.
//
// This package implements no retries, rate limiting, or connection
// management; those belong to the harness or the transport.
package nbhttp
