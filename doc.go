// Package sema is a conversation execution engine for session-oriented
// text transports such as USSD, WhatsApp-style chat, and SMS menus.
//
// Sema lets you write a whole multi-turn conversation as one ordinary Go
// function. Instead of hand-coding a state machine per screen, the engine
// replays the flow function from the top on every inbound message and
// memoizes each screen's answer in the session store, so the function
// simply falls through its already-answered screens and blocks at the
// first unanswered one.
//
// # Core Concepts
//
// The sema programming model is intentionally small:
//
//  1. App
//  2. Flows and actions
//  3. Context and screens
//  4. Signals
//  5. Session providers
//  6. Simulator
//
// # App
//
// An App bundles a session provider, the middleware pipeline, and the
// executor. Transport adapters sit outside: they populate a Request, call
// App.Turn, and encode the Response for their platform.
//
// The built-in pipeline runs, outermost first:
//
//   - session_loader: opens the session store for the request's session id
//   - pagination: bounds every outgoing message and serves page navigation
//   - executor: replays the flow function and translates its signal
//
// Custom stages can be added with Use, UseBefore, and UseAfter.
//
// # Flows and actions
//
// A flow is a named set of entry actions. An action is a plain function:
//
//	func register(c *sema.Context) error {
//	    name, err := sema.TypedScreen(c, "name", func(p *sema.Prompt) (string, error) {
//	        return p.Ask("What is your name?")
//	    })
//	    if err != nil {
//	        return err
//	    }
//	    return c.Say("Welcome, " + name + "!")
//	}
//
// Flows are defined with NewFlow and registered on an App before use.
//
// # Context and screens
//
// Context.Screen runs a screen builder at a session-scoped key. If the key
// already holds a value the builder is skipped and the cached value
// returned; otherwise the builder runs, and on success its value is
// persisted and the turn's input is consumed. GoBack deletes the most
// recent resolved screen and rewinds the flow so it re-runs.
//
// # Signals
//
// Screens and Say communicate with the executor through typed error
// values. Flow code never inspects them: it just propagates err upward.
// The executor classifies the signal into a prompt response, a terminal
// response, or an in-turn replay.
//
// # Session providers
//
// Session state lives behind the SessionProvider and SessionStore
// interfaces. Implementations included:
//
//   - In-memory (non-durable, best for tests)
//   - In-process cache with per-session TTL
//   - SQLite (embedded durability)
//   - Postgres
//   - Redis
//
// All values survive a JSON round-trip through the store; Decode
// rehydrates them into typed structs.
//
// # Simulator
//
// Simulator drives an App turn by turn from a single process, standing in
// for a real transport. It keeps a transcript and is the quickest way to
// run and debug a flow during development.
//
// For runnable programs, see the /examples directory.
package sema
