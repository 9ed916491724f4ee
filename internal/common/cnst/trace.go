package cnst

// Tracer names used across the SDK
const (
	// TraceREST is the tracer name for request/response calls
	TraceREST = "watson/rest"
	// TraceStream is the tracer name for the streaming transport
	TraceStream = "watson/stream"
)

// Span names
const (
	SpanStreamConnect = "watson.stream.connect"
	SpanRESTPrefix    = "watson.rest."
)

// Common attribute keys
const (
	AttrService        = "watson.service"
	AttrSessionID      = "watson.session_id"
	AttrConnectionID   = "watson.connection_id"
	AttrStreamURL      = "watson.stream.url"
	AttrHTTPStatusCode = "http.status_code"
	AttrErrorReason    = "error.reason"
)
