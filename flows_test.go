package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowBuilderDefaultEntry(t *testing.T) {
	noop := func(c *Context) error { return c.Say("bye") }

	def := NewFlow("menu").
		Action("main", noop).
		Action("help", noop).
		Definition()

	assert.Equal(t, "menu", def.Name)
	assert.Equal(t, "main", def.Entry, "first action is the default entry")
	assert.Len(t, def.Actions, 2)
}

func TestFlowBuilderExplicitEntry(t *testing.T) {
	noop := func(c *Context) error { return c.Say("bye") }

	def := NewFlow("menu").
		Action("help", noop).
		Action("main", noop).
		Entry("main").
		Definition()

	assert.Equal(t, "main", def.Entry)
}

func TestFlowBuilderPanics(t *testing.T) {
	noop := func(c *Context) error { return c.Say("bye") }

	assert.PanicsWithValue(t, "sema: action name must not be empty", func() {
		NewFlow("menu").Action("", noop)
	})
	assert.PanicsWithValue(t, `sema: action "main" has nil function`, func() {
		NewFlow("menu").Action("main", nil)
	})
	assert.PanicsWithValue(t, `sema: action "main" defined twice`, func() {
		NewFlow("menu").Action("main", noop).Action("main", noop)
	})
}

func TestFlowBuilderRegister(t *testing.T) {
	app := NewInMemoryApp()
	noop := func(c *Context) error { return c.Say("bye") }

	require.NoError(t, NewFlow("menu").Action("main", noop).Register(app))

	// Same name again is rejected by the app.
	err := NewFlow("menu").Action("main", noop).Register(app)
	assert.Error(t, err)

	assert.Panics(t, func() {
		NewFlow("menu").Action("main", noop).MustRegister(app)
	})
}
