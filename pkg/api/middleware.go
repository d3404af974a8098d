package api

import "context"

// Request is one inbound turn as populated by a transport adapter.
type Request struct {
	// Flow names the registered flow this turn belongs to. May be empty
	// when the App has exactly one registered flow.
	Flow string

	// Action names the entry action to invoke. Empty means the flow's
	// default entry.
	Action string

	// SessionID identifies the conversation. The session boundary (per
	// caller, per caller+flow, ...) is the transport adapter's choice.
	SessionID string

	// Input is the raw user input for this turn. It is nil on the
	// session-initiating turn.
	Input *string

	// Metadata carries read-only platform details (caller id, timestamp,
	// message id, contact name, location, inbound media).
	Metadata Metadata
}

// Turn is the mutable per-request state threaded through the middleware
// pipeline. The session loader stage populates Session before any stage
// that needs it runs.
type Turn struct {
	Request *Request
	Session SessionStore
}

// Handler processes a turn and produces the outgoing response. Each
// middleware stage receives the rest of the pipeline as a Handler and may
// call it at most once.
type Handler func(ctx context.Context, turn *Turn) (*Response, error)

// Middleware is a named pipeline stage. Names identify stages for
// insert-before/insert-after configuration.
type Middleware struct {
	Name string
	Wrap func(next Handler) Handler
}

// Names of the built-in pipeline stages, usable as anchors when inserting
// custom stages. Their relative order is fixed: session loader before
// pagination before executor.
const (
	StageSessionLoader = "session_loader"
	StagePagination    = "pagination"
	StageExecutor      = "executor"
)
