package sema

import (
	"fmt"

	"github.com/davidenyagah/sema/pkg/api"
)

// FlowBuilder provides a fluent API for defining flows:
//
//	flow := sema.NewFlow("registration").
//	    Action("main", mainAction).
//	    Action("help", helpAction).
//	    Entry("main")
//
//	if err := flow.Register(app); err != nil {
//	    log.Fatal(err)
//	}
type FlowBuilder struct {
	def   api.FlowDefinition
	first string
}

// NewFlow creates a new flow builder with the given name.
func NewFlow(name string) *FlowBuilder {
	return &FlowBuilder{
		def: api.FlowDefinition{
			Name:    name,
			Actions: make(map[string]api.ActionFunc),
		},
	}
}

// Name returns the flow name.
func (b *FlowBuilder) Name() string {
	return b.def.Name
}

// Definition returns the underlying FlowDefinition.
// Typically used when interacting with lower-level APIs.
func (b *FlowBuilder) Definition() FlowDefinition {
	def := b.def
	if def.Entry == "" {
		def.Entry = b.first
	}
	return def
}

// Action adds a named entry action to the flow. The first action added
// becomes the default entry unless Entry overrides it.
func (b *FlowBuilder) Action(name string, fn ActionFunc) *FlowBuilder {
	if name == "" {
		panic("sema: action name must not be empty")
	}
	if fn == nil {
		panic(fmt.Sprintf("sema: action %q has nil function", name))
	}
	if _, ok := b.def.Actions[name]; ok {
		panic(fmt.Sprintf("sema: action %q defined twice", name))
	}

	if b.first == "" {
		b.first = name
	}
	b.def.Actions[name] = fn
	return b
}

// Entry sets the default entry action.
func (b *FlowBuilder) Entry(name string) *FlowBuilder {
	b.def.Entry = name
	return b
}

// Register registers the built flow with the given app.
func (b *FlowBuilder) Register(app *App) error {
	return app.RegisterFlow(b.Definition())
}

// MustRegister is like Register but panics on error.
// Useful for initialization in main().
func (b *FlowBuilder) MustRegister(app *App) {
	if err := b.Register(app); err != nil {
		panic(err)
	}
}
