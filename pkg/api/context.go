package api

import (
	"context"
)

// ScreenBuilder produces the value of one screen from the turn's prompt.
// It either returns a value (the screen is answered) or raises a Prompt
// signal by returning it as the error.
type ScreenBuilder func(p *Prompt) (any, error)

// ContextConfig carries the per-App knobs the replay engine needs.
type ContextConfig struct {
	// CombineValidationError controls whether a validation failure message
	// is concatenated with the original question when re-prompting.
	CombineValidationError bool
}

// Context is the per-turn conversation context handed to flow actions.
//
// A flow action is replayed from its start on every turn. Screen values
// already held by the session short-circuit without running their builder,
// which is what lets a single linear method "resume where it left off".
type Context struct {
	ctx      context.Context
	req      *Request
	session  SessionStore
	observer Observer
	cfg      ContextConfig

	// input is the turn's raw input. It is single-use: the first screen
	// whose builder consumes it successfully clears it.
	input *string

	// stack records the screen keys touched during this replay, in order.
	// It is transient and never persisted.
	stack []string
}

// NewContext builds a fresh Context for one replay. The executor calls
// this once per entry-action invocation (including RestartFlow re-entries).
func NewContext(ctx context.Context, req *Request, session SessionStore, obs Observer, cfg ContextConfig) *Context {
	if obs == nil {
		obs = NoopObserver{}
	}
	return &Context{
		ctx:      ctx,
		req:      req,
		session:  session,
		observer: obs,
		cfg:      cfg,
		input:    req.Input,
	}
}

// Context returns the request-scoped context.Context.
func (c *Context) Context() context.Context { return c.ctx }

// SessionID returns the id of the session this turn belongs to.
func (c *Context) SessionID() string { return c.req.SessionID }

// Metadata returns the read-only platform metadata for this turn.
func (c *Context) Metadata() Metadata { return c.req.Metadata }

// Session exposes the session store handle, for flow code that wants to
// stash its own data or destroy the session after a final Say.
func (c *Context) Session() SessionStore { return c.session }

// Input returns the turn's raw input, if it has not been consumed yet.
func (c *Context) Input() (string, bool) {
	if c.input == nil {
		return "", false
	}
	return *c.input, true
}

func (c *Context) consumeInput() {
	c.input = nil
}

// RemainingInput returns the raw input left unconsumed by this replay.
// The executor uses it to re-invoke the action with the same unconsumed
// input after a RestartFlow signal.
func (c *Context) RemainingInput() *string {
	return c.input
}

// Screen executes one memoized question/answer unit.
//
// If the session already holds a value for key, the builder is not invoked
// and the cached value is returned. Otherwise the builder runs with a
// Prompt wrapping the turn's raw input: a returned value is stored under
// key and the raw input is cleared; a returned Prompt signal propagates out
// of the whole action and ends the replay.
//
// Using the same key twice within one replay is a contract violation.
func (c *Context) Screen(key string, builder ScreenBuilder) (any, error) {
	if key == "" {
		return nil, NewContractViolation("screen key must not be empty")
	}
	if builder == nil {
		return nil, NewContractViolation("screen %q has nil builder", key)
	}
	for _, seen := range c.stack {
		if seen == key {
			return nil, NewContractViolation("screen key %q used twice in one replay", key)
		}
	}
	c.stack = append(c.stack, key)

	cached, err := c.session.Get(c.ctx, key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		c.observer.OnScreenResolved(c.ctx, c.req.SessionID, key, true)
		return cached, nil
	}

	value, err := builder(&Prompt{c: c})
	if err != nil {
		return nil, err
	}

	if err := c.session.Set(c.ctx, key, value); err != nil {
		return nil, err
	}
	c.consumeInput()
	c.observer.OnScreenResolved(c.ctx, c.req.SessionID, key, false)
	return value, nil
}

// Say unconditionally ends the conversation with a final message. It
// always returns a Terminate signal; the caller returns it from the action.
func (c *Context) Say(message string, opts ...MessageOption) error {
	o := applyMessageOptions(opts)
	return NewTerminateSignal(message, o.media)
}

// GoBack rewinds the most recently touched screen.
//
// If the navigation stack is non-empty it deletes that screen's cached
// value and returns (true, RestartFlow): the executor re-invokes the entry
// action immediately with the same unconsumed input, so replay runs through
// all earlier screens and re-prompts at the rewound one. With an empty
// stack it returns (false, nil) and the flow simply continues.
func (c *Context) GoBack() (bool, error) {
	if len(c.stack) == 0 {
		return false, nil
	}
	last := c.stack[len(c.stack)-1]
	if err := c.session.Delete(c.ctx, last); err != nil {
		return false, err
	}
	return true, NewRestartSignal()
}

// TypedScreen is a strongly-typed wrapper over Context.Screen. The cached
// value is rehydrated with Decode, so it works across JSON round-trips:
//
//	age, err := api.TypedScreen(c, "age", func(p *api.Prompt) (int, error) { ... })
func TypedScreen[T any](c *Context, key string, builder func(p *Prompt) (T, error)) (T, error) {
	var zero T
	v, err := c.Screen(key, func(p *Prompt) (any, error) {
		return builder(p)
	})
	if err != nil {
		return zero, err
	}
	if direct, ok := v.(T); ok {
		return direct, nil
	}
	var out T
	if err := Decode(v, &out); err != nil {
		return zero, err
	}
	return out, nil
}
