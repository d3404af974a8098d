package api

// ActionFunc is one entry point into a flow. It is invoked once per turn
// (replayed from the start) and must end by returning a signal: either a
// Prompt raised by an unanswered screen, a Terminate from Say, or a
// RestartFlow from GoBack. Returning nil is a contract violation.
type ActionFunc func(c *Context) error

// FlowDefinition describes user-authored conversation logic: a named set
// of entry actions, with a default entry.
type FlowDefinition struct {
	Name string

	// Actions maps action names to entry points.
	Actions map[string]ActionFunc

	// Entry names the action invoked when a request does not specify one.
	Entry string
}
