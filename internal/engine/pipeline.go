package engine

import (
	"context"
	"fmt"

	"github.com/davidenyagah/sema/pkg/api"
)

// Pipeline is an ordered chain of named middleware stages wrapped around a
// terminal handler (the executor). Each inbound turn flows through every
// stage exactly once.
type Pipeline struct {
	stages   []api.Middleware
	terminal api.Handler
}

// NewPipeline builds a pipeline with the given stages, outermost first,
// around the terminal handler.
func NewPipeline(terminal api.Handler, stages ...api.Middleware) *Pipeline {
	return &Pipeline{
		stages:   append([]api.Middleware(nil), stages...),
		terminal: terminal,
	}
}

func (p *Pipeline) indexOf(name string) int {
	for i, s := range p.stages {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (p *Pipeline) checkNew(mw api.Middleware) error {
	if mw.Name == "" {
		return fmt.Errorf("middleware name must not be empty")
	}
	if mw.Wrap == nil {
		return fmt.Errorf("middleware %q has nil wrap function", mw.Name)
	}
	if p.indexOf(mw.Name) >= 0 {
		return fmt.Errorf("middleware already present: %s", mw.Name)
	}
	return nil
}

// Append adds a stage as the innermost middleware (just outside the
// terminal handler).
func (p *Pipeline) Append(mw api.Middleware) error {
	if err := p.checkNew(mw); err != nil {
		return err
	}
	p.stages = append(p.stages, mw)
	return nil
}

// InsertBefore inserts a stage immediately outside the named stage.
func (p *Pipeline) InsertBefore(name string, mw api.Middleware) error {
	if err := p.checkNew(mw); err != nil {
		return err
	}
	i := p.indexOf(name)
	if i < 0 {
		return fmt.Errorf("unknown middleware: %s", name)
	}
	p.stages = append(p.stages[:i], append([]api.Middleware{mw}, p.stages[i:]...)...)
	return nil
}

// InsertAfter inserts a stage immediately inside the named stage.
func (p *Pipeline) InsertAfter(name string, mw api.Middleware) error {
	if err := p.checkNew(mw); err != nil {
		return err
	}
	i := p.indexOf(name)
	if i < 0 {
		return fmt.Errorf("unknown middleware: %s", name)
	}
	rest := append([]api.Middleware{mw}, p.stages[i+1:]...)
	p.stages = append(p.stages[:i+1], rest...)
	return nil
}

// Names returns the stage names in order, outermost first.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Handler composes the stages around the terminal handler into a single
// Handler. The first stage is outermost.
func (p *Pipeline) Handler() api.Handler {
	h := p.terminal
	for i := len(p.stages) - 1; i >= 0; i-- {
		h = p.stages[i].Wrap(h)
	}
	return h
}

// SessionLoader returns the built-in stage that opens the session store
// handle for the turn's session id and attaches it to the Turn.
func SessionLoader(provider api.SessionProvider) api.Middleware {
	return api.Middleware{
		Name: api.StageSessionLoader,
		Wrap: func(next api.Handler) api.Handler {
			return func(ctx context.Context, turn *api.Turn) (*api.Response, error) {
				store, err := provider.Open(ctx, turn.Request.SessionID)
				if err != nil {
					return nil, fmt.Errorf("open session %q: %w", turn.Request.SessionID, err)
				}
				turn.Session = store
				return next(ctx, turn)
			}
		},
	}
}
