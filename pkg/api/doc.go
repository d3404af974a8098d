// Package api contains the core building blocks used by the sema
// conversation engine. It provides the low-level primitives for authoring
// flows, raising control-flow signals, persisting session state, and
// observing engine behavior.
//
// Most users interact with the higher-level sema package, which re-exports
// selected types and helpers from this package. The api package is intended
// for advanced use cases, custom transport adapters, or contributors
// extending the engine itself.
//
// # Concepts
//
// The api package centers around a small set of concepts:
//
//   - Conversation context and screens
//   - Control-flow signals
//   - Session stores
//   - Middleware stages
//   - Observability
//
// # Context and Screens
//
// A flow action is an ordinary Go function that receives a Context and is
// replayed from its start on every turn. Context.Screen memoizes each
// question/answer unit under a key in the session: once a screen has a
// value, its builder never runs again, so earlier screens short-circuit and
// replay resumes "where it left off".
//
// Screen builders receive a Prompt, the capability wrapping the turn's raw
// input. Prompt.Ask, Prompt.Select and Prompt.YesNo validate and convert
// input when present, and otherwise raise a Prompt signal carrying the
// question to send back.
//
// # Signals
//
// Waiting for input is not a blocking wait. When a builder cannot produce a
// value, it returns a Prompt signal as an error; the signal propagates
// through every enclosing call frame of the action via ordinary error
// returns and is classified at the executor with AsPrompt, AsTerminate and
// IsRestart. Say raises Terminate; GoBack raises RestartFlow, which makes
// the executor re-invoke the action immediately within the same turn.
//
// An action that returns a nil error, a duplicate screen key, and a nil
// builder are contract violations: fatal, never shown to the user.
//
// # Session Stores
//
// SessionProvider opens per-session SessionStore handles. Values must be
// JSON-serializable; Decode rehydrates structured values after a store
// round-trip. Backends live in the sema root package constructors.
//
// # Middleware
//
// A Handler processes one turn; a Middleware is a named stage wrapping a
// Handler. The App composes the built-in stages (session loader,
// pagination, executor) with user stages inserted by name.
//
// # Observability
//
// The Observer interface reports turn and screen lifecycle events. Ready-
// made implementations cover structured logging (log/slog), basic in-memory
// metrics, and fan-out composition.
package api
