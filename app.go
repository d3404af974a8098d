package sema

import (
	"context"

	"github.com/davidenyagah/sema/internal/engine"
	"github.com/davidenyagah/sema/pkg/api"
)

// Config carries the App-wide knobs. The zero value is completed with
// defaults by NewApp; all fields are caller-configurable via Options.
type Config struct {
	// MaxPageSize is the pagination budget, in runes, for a whole
	// outgoing message including the navigation footer.
	MaxPageSize int

	// NextToken/BackToken are the raw inputs that navigate pages;
	// NextLabel/BackLabel are the control texts shown in the footer.
	NextToken string
	NextLabel string
	BackToken string
	BackLabel string

	// InlineChoiceLimit is the largest choice list a response keeps in
	// structured form; longer lists are flattened into the message text.
	InlineChoiceLimit int

	// CombineValidationError controls whether a validation failure
	// message is concatenated with the original question on re-prompt.
	CombineValidationError bool
}

func defaultConfig() Config {
	return Config{
		MaxPageSize:            160,
		NextToken:              "#",
		NextLabel:              "More",
		BackToken:              "0",
		BackLabel:              "Back",
		InlineChoiceLimit:      3,
		CombineValidationError: true,
	}
}

// Option configures an App at construction time.
type Option func(*App)

// WithObserver sets the observer notified of turn and screen events.
func WithObserver(obs api.Observer) Option {
	return func(a *App) { a.observer = obs }
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(a *App) { a.cfg = cfg }
}

// WithPageSize sets the pagination budget in runes.
func WithPageSize(n int) Option {
	return func(a *App) { a.cfg.MaxPageSize = n }
}

// WithNavigation sets the pagination tokens and labels.
func WithNavigation(nextToken, nextLabel, backToken, backLabel string) Option {
	return func(a *App) {
		a.cfg.NextToken = nextToken
		a.cfg.NextLabel = nextLabel
		a.cfg.BackToken = backToken
		a.cfg.BackLabel = backLabel
	}
}

// WithInlineChoiceLimit sets how many choices a response may carry in
// structured form before being flattened to text.
func WithInlineChoiceLimit(n int) Option {
	return func(a *App) { a.cfg.InlineChoiceLimit = n }
}

// WithCombinedValidationError controls whether re-prompts repeat the
// original question after the validation message.
func WithCombinedValidationError(combine bool) Option {
	return func(a *App) { a.cfg.CombineValidationError = combine }
}

// App bundles the session provider, the middleware pipeline, and the
// executor into a single conversation application. Transport adapters sit
// outside: they populate a Request, call Turn, and encode the Response for
// their platform.
type App struct {
	provider api.SessionProvider
	observer api.Observer
	cfg      Config

	executor *engine.Executor
	pipeline *engine.Pipeline
}

// NewApp creates an App on the given session provider.
func NewApp(provider api.SessionProvider, opts ...Option) *App {
	a := &App{
		provider: provider,
		observer: api.NoopObserver{},
		cfg:      defaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.executor = engine.NewExecutor(a.observer, api.ContextConfig{
		CombineValidationError: a.cfg.CombineValidationError,
	})
	a.pipeline = engine.NewPipeline(a.executor.Handler(),
		engine.SessionLoader(a.provider),
		engine.Pagination(engine.PaginationConfig{
			MaxPageSize:       a.cfg.MaxPageSize,
			NextToken:         a.cfg.NextToken,
			NextLabel:         a.cfg.NextLabel,
			BackToken:         a.cfg.BackToken,
			BackLabel:         a.cfg.BackLabel,
			InlineChoiceLimit: a.cfg.InlineChoiceLimit,
		}),
	)
	return a
}

// RegisterFlow registers a flow definition by name.
func (a *App) RegisterFlow(def FlowDefinition) error {
	return a.executor.Register(def)
}

// Use appends a custom stage as the innermost middleware, between
// pagination and the executor.
func (a *App) Use(mw Middleware) error {
	return a.pipeline.Append(mw)
}

// UseBefore inserts a custom stage immediately outside the named stage.
func (a *App) UseBefore(name string, mw Middleware) error {
	return a.pipeline.InsertBefore(name, mw)
}

// UseAfter inserts a custom stage immediately inside the named stage.
func (a *App) UseAfter(name string, mw Middleware) error {
	return a.pipeline.InsertAfter(name, mw)
}

// Stages returns the configured stage names, outermost first. The
// executor runs inside all of them.
func (a *App) Stages() []string {
	return a.pipeline.Names()
}

// Turn runs one inbound turn through the pipeline and returns the
// response to deliver. Fatal errors (contract violations, store failures)
// are returned without any user-facing response; the transport adapter
// decides what, if anything, to show.
func (a *App) Turn(ctx context.Context, req *Request) (*Response, error) {
	return a.pipeline.Handler()(ctx, &api.Turn{Request: req})
}
