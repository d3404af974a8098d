package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/davidenyagah/sema/pkg/api"
)

// maxRestartsPerTurn bounds RestartFlow re-invocations within one turn, so
// a flow that rewinds unconditionally cannot spin forever.
const maxRestartsPerTurn = 100

var (
	// ErrFlowNotFound is returned when a turn names an unregistered flow.
	ErrFlowNotFound = errors.New("flow not found")

	// ErrActionNotFound is returned when a turn names an unknown action.
	ErrActionNotFound = errors.New("action not found")
)

// Executor is the innermost pipeline stage. It constructs a fresh
// conversation Context per replay, invokes the requested entry action, and
// translates the raised signal into a Response.
type Executor struct {
	flows    map[string]api.FlowDefinition
	observer api.Observer
	cfg      api.ContextConfig
}

// NewExecutor creates an Executor with the given observer and context
// configuration. A nil observer defaults to NoopObserver.
func NewExecutor(obs api.Observer, cfg api.ContextConfig) *Executor {
	if obs == nil {
		obs = api.NoopObserver{}
	}
	return &Executor{
		flows:    make(map[string]api.FlowDefinition),
		observer: obs,
		cfg:      cfg,
	}
}

// Register registers a flow definition by name.
func (e *Executor) Register(def api.FlowDefinition) error {
	if def.Name == "" {
		return errors.New("flow name is required")
	}
	if len(def.Actions) == 0 {
		return fmt.Errorf("flow %q must have at least one action", def.Name)
	}
	if def.Entry == "" {
		return fmt.Errorf("flow %q has no entry action", def.Name)
	}
	if _, ok := def.Actions[def.Entry]; !ok {
		return fmt.Errorf("flow %q entry action %q is not defined", def.Name, def.Entry)
	}
	if _, ok := e.flows[def.Name]; ok {
		return fmt.Errorf("flow already registered: %s", def.Name)
	}
	e.flows[def.Name] = def
	return nil
}

func (e *Executor) resolve(req *api.Request) (api.FlowDefinition, api.ActionFunc, error) {
	var def api.FlowDefinition
	switch {
	case req.Flow != "":
		d, ok := e.flows[req.Flow]
		if !ok {
			return def, nil, fmt.Errorf("%w: %s", ErrFlowNotFound, req.Flow)
		}
		def = d
	case len(e.flows) == 1:
		for _, d := range e.flows {
			def = d
		}
	default:
		return def, nil, fmt.Errorf("%w: request names no flow and %d are registered", ErrFlowNotFound, len(e.flows))
	}

	name := req.Action
	if name == "" {
		name = def.Entry
	}
	action, ok := def.Actions[name]
	if !ok {
		return def, nil, fmt.Errorf("%w: %s.%s", ErrActionNotFound, def.Name, name)
	}
	return def, action, nil
}

// Handler returns the terminal pipeline handler.
func (e *Executor) Handler() api.Handler {
	return e.Execute
}

// Execute runs one turn to completion. RestartFlow signals re-invoke the
// action immediately with the input still unconsumed by the previous
// replay; every re-invocation gets a fresh Context (and so a fresh
// navigation stack).
func (e *Executor) Execute(ctx context.Context, turn *api.Turn) (*api.Response, error) {
	def, action, err := e.resolve(turn.Request)
	if err != nil {
		return nil, err
	}
	if turn.Session == nil {
		return nil, errors.New("executor: turn has no session (is the session loader stage installed?)")
	}

	start := time.Now()
	e.observer.OnTurnStart(ctx, turn.Request.SessionID, def.Name)

	req := *turn.Request
	for attempt := 0; ; attempt++ {
		if attempt > maxRestartsPerTurn {
			err := api.NewContractViolation("flow %q restarted more than %d times in one turn", def.Name, maxRestartsPerTurn)
			e.observer.OnTurnFailed(ctx, req.SessionID, def.Name, err)
			return nil, err
		}

		c := api.NewContext(ctx, &req, turn.Session, e.observer, e.cfg)
		err := action(c)

		if err == nil {
			// Every reachable path must end in Say or an unanswered screen.
			err = api.NewContractViolation("flow %q action returned without raising a signal", def.Name)
			e.observer.OnTurnFailed(ctx, req.SessionID, def.Name, err)
			return nil, err
		}

		if msg, choices, media, ok := api.AsPrompt(err); ok {
			resp := &api.Response{Kind: api.KindPrompt, Message: msg, Choices: choices, Media: media}
			e.observer.OnTurnCompleted(ctx, req.SessionID, def.Name, resp.Kind, time.Since(start))
			return resp, nil
		}

		if msg, media, ok := api.AsTerminate(err); ok {
			resp := &api.Response{Kind: api.KindTerminal, Message: msg, Media: media}
			e.observer.OnTurnCompleted(ctx, req.SessionID, def.Name, resp.Kind, time.Since(start))
			return resp, nil
		}

		if api.IsRestart(err) {
			// The rewound screen's cache entry is already deleted; replay
			// again in this same turn with whatever input is left.
			req.Input = c.RemainingInput()
			continue
		}

		e.observer.OnTurnFailed(ctx, req.SessionID, def.Name, err)
		return nil, err
	}
}
