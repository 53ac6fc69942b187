package nbhttp

import (
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Doer is the transport contract consumed by the dispatch functions.
// *http.Client satisfies it; so does any RoundTripper-backed client or a
// test double.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CompletionOption controls how much of the response is awaited before a
// dispatch returns.
type CompletionOption int

const (
	// ResponseContentRead buffers the full response body in memory before
	// the outcome is produced. The body on the returned response is
	// re-readable. This is the default.
	ResponseContentRead CompletionOption = iota

	// ResponseHeadersRead produces the outcome as soon as response headers
	// arrive, leaving the body as an unread stream owned by the caller.
	ResponseHeadersRead
)

// DispatchConfig is per-call configuration for SendWith and SendTypedWith.
//
// A config may be reused across calls; it is treated as immutable for the
// duration of a single dispatch. Optional members use nil for "not set" so
// absence is distinguishable from an explicit zero value.
//
// Build one with NewDispatchConfig:
//
//	cfg := nbhttp.NewDispatchConfig(
//	    nbhttp.WithLogger(&logger),
//	    nbhttp.WithCompletion(nbhttp.ResponseHeadersRead),
//	)
type DispatchConfig struct {
	// Completion selects the completion behavior. Zero value buffers the
	// full body (ResponseContentRead).
	Completion CompletionOption

	// Logger enables request/response debug logging when non-nil.
	Logger *zerolog.Logger

	// JSON overrides the process-wide default JSON options when non-nil.
	JSON *JSONOptions

	// TraceID correlates log entries for a single logical call. Generated
	// once per config when a logger is configured, empty otherwise.
	TraceID string

	// Metrics records dispatch outcomes when non-nil.
	Metrics *MetricsCollector
}

// DispatchOption configures a DispatchConfig.
type DispatchOption func(*DispatchConfig)

// NewDispatchConfig builds a DispatchConfig from options.
//
// If a logger is configured and no trace id was given, a trace id is
// generated once for the config's lifetime.
func NewDispatchConfig(opts ...DispatchOption) *DispatchConfig {
	cfg := &DispatchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger != nil && cfg.TraceID == "" {
		cfg.TraceID = uuid.NewString()
	}
	return cfg
}

// DefaultDispatchConfig returns the config used by Send and SendTyped:
// full-body completion, no logger, no metrics, default JSON options.
func DefaultDispatchConfig() *DispatchConfig {
	return &DispatchConfig{}
}

// WithCompletion sets the completion behavior.
func WithCompletion(c CompletionOption) DispatchOption {
	return func(cfg *DispatchConfig) {
		cfg.Completion = c
	}
}

// WithLogger enables request/response logging through the given logger.
func WithLogger(logger *zerolog.Logger) DispatchOption {
	return func(cfg *DispatchConfig) {
		cfg.Logger = logger
	}
}

// WithJSONOptions overrides the process-wide default JSON options for this
// config.
func WithJSONOptions(o *JSONOptions) DispatchOption {
	return func(cfg *DispatchConfig) {
		cfg.JSON = o
	}
}

// WithTraceID sets an explicit trace id instead of a generated one.
func WithTraceID(id string) DispatchOption {
	return func(cfg *DispatchConfig) {
		cfg.TraceID = id
	}
}

// WithMetrics enables outcome metrics recording for this config.
func WithMetrics(mc *MetricsCollector) DispatchOption {
	return func(cfg *DispatchConfig) {
		cfg.Metrics = mc
	}
}

// jsonOptions resolves the effective JSON options for a dispatch.
func (cfg *DispatchConfig) jsonOptions() *JSONOptions {
	if cfg.JSON != nil {
		return cfg.JSON
	}
	return DefaultJSONOptions()
}

// JSONOptions carries encode and decode options forwarded to the JSON codec
// for body serialization and typed response decoding.
type JSONOptions struct {
	Encode []json.EncodeOptionFunc
	Decode []json.DecodeOptionFunc
}

var (
	defaultJSONMu      sync.RWMutex
	defaultJSONOptions = &JSONOptions{}
)

// SetDefaultJSONOptions replaces the process-wide default JSON options.
//
// Intended to be called once at startup. Reads during dispatch are
// synchronized, so a runtime swap is safe, but per-call overrides via
// WithJSONOptions are the preferred way to vary options.
func SetDefaultJSONOptions(o *JSONOptions) {
	if o == nil {
		o = &JSONOptions{}
	}
	defaultJSONMu.Lock()
	defaultJSONOptions = o
	defaultJSONMu.Unlock()
}

// DefaultJSONOptions returns the process-wide default JSON options.
func DefaultJSONOptions() *JSONOptions {
	defaultJSONMu.RLock()
	defer defaultJSONMu.RUnlock()
	return defaultJSONOptions
}
