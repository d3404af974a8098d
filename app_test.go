package sema

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidenyagah/sema/pkg/api"
)

func ptr(s string) *string { return &s }

func registrationFlow() *FlowBuilder {
	return NewFlow("registration").
		Action("main", func(c *Context) error {
			name, err := TypedScreen(c, "name", func(p *Prompt) (string, error) {
				return p.Ask("What is your name?", WithValidators(NonEmpty("")))
			})
			if err != nil {
				return err
			}
			ok, err := TypedScreen(c, "confirm", func(p *Prompt) (bool, error) {
				return p.YesNo("Register as " + name + "?")
			})
			if err != nil {
				return err
			}
			if !ok {
				return c.Say("Registration cancelled.")
			}
			return c.Say("Welcome, " + name + "!")
		})
}

func TestAppRunsAFlowEndToEnd(t *testing.T) {
	app := NewInMemoryApp()
	registrationFlow().MustRegister(app)

	ctx := context.Background()
	turn := func(input *string) *Response {
		resp, err := app.Turn(ctx, &Request{Flow: "registration", SessionID: "u-1", Input: input})
		require.NoError(t, err)
		return resp
	}

	resp := turn(nil)
	assert.Equal(t, KindPrompt, resp.Kind)
	assert.Equal(t, "What is your name?", resp.Message)

	resp = turn(ptr("John"))
	assert.Equal(t, KindPrompt, resp.Kind)
	assert.Equal(t, "Register as John?", resp.Message)
	require.Len(t, resp.Choices, 2)

	resp = turn(ptr("1"))
	assert.Equal(t, KindTerminal, resp.Kind)
	assert.Equal(t, "Welcome, John!", resp.Message)
}

func TestAppSessionsAreIndependent(t *testing.T) {
	app := NewInMemoryApp()
	registrationFlow().MustRegister(app)

	ctx := context.Background()
	play := func(session string, input *string) *Response {
		resp, err := app.Turn(ctx, &Request{Flow: "registration", SessionID: session, Input: input})
		require.NoError(t, err)
		return resp
	}

	play("u-1", nil)
	play("u-2", nil)
	play("u-1", ptr("John"))

	// u-2 is still on the first question.
	resp := play("u-2", ptr("Mary"))
	assert.Equal(t, "Register as Mary?", resp.Message)
}

func TestAppValidationReprompts(t *testing.T) {
	app := NewInMemoryApp()
	registrationFlow().MustRegister(app)

	ctx := context.Background()
	_, err := app.Turn(ctx, &Request{Flow: "registration", SessionID: "u-1"})
	require.NoError(t, err)

	resp, err := app.Turn(ctx, &Request{Flow: "registration", SessionID: "u-1", Input: ptr("  ")})
	require.NoError(t, err)
	assert.Equal(t, KindPrompt, resp.Kind)
	assert.Equal(t, "This field is required.\n\nWhat is your name?", resp.Message)
}

func TestAppCombinedValidationErrorDisabled(t *testing.T) {
	app := NewInMemoryApp(WithCombinedValidationError(false))
	registrationFlow().MustRegister(app)

	ctx := context.Background()
	_, err := app.Turn(ctx, &Request{Flow: "registration", SessionID: "u-1"})
	require.NoError(t, err)

	resp, err := app.Turn(ctx, &Request{Flow: "registration", SessionID: "u-1", Input: ptr("")})
	require.NoError(t, err)
	assert.Equal(t, "This field is required.", resp.Message)
}

func TestAppPaginatesLongOutput(t *testing.T) {
	app := NewInMemoryApp(WithPageSize(100))
	NewFlow("terms").
		Action("main", func(c *Context) error {
			return c.Say(strings.Repeat("A", 150))
		}).
		MustRegister(app)

	ctx := context.Background()
	resp, err := app.Turn(ctx, &Request{Flow: "terms", SessionID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, KindPrompt, resp.Kind, "intermediate page keeps the session open")
	assert.True(t, strings.HasSuffix(resp.Message, "\n\n# More"))

	resp, err = app.Turn(ctx, &Request{Flow: "terms", SessionID: "u-1", Input: ptr("#")})
	require.NoError(t, err)
	assert.Equal(t, KindTerminal, resp.Kind)
	assert.True(t, strings.HasSuffix(resp.Message, "\n\n0 Back"))
}

func TestAppCustomNavigationTokens(t *testing.T) {
	app := NewInMemoryApp(
		WithPageSize(100),
		WithNavigation("99", "Next", "00", "Prev"),
	)
	NewFlow("terms").
		Action("main", func(c *Context) error {
			return c.Say(strings.Repeat("A", 150))
		}).
		MustRegister(app)

	ctx := context.Background()
	resp, err := app.Turn(ctx, &Request{Flow: "terms", SessionID: "u-1"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.Message, "\n\n99 Next"))

	resp, err = app.Turn(ctx, &Request{Flow: "terms", SessionID: "u-1", Input: ptr("99")})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resp.Message, "\n\n00 Prev"))
}

func TestAppStagesAndCustomMiddleware(t *testing.T) {
	app := NewInMemoryApp()
	registrationFlow().MustRegister(app)

	var seen []string
	stamp := func(name string) Middleware {
		return Middleware{
			Name: name,
			Wrap: func(next Handler) Handler {
				return func(ctx context.Context, turn *Turn) (*Response, error) {
					seen = append(seen, name)
					return next(ctx, turn)
				}
			},
		}
	}

	require.NoError(t, app.Use(stamp("audit")))
	require.NoError(t, app.UseBefore(StagePagination, stamp("auth")))
	require.NoError(t, app.UseAfter(StageSessionLoader, stamp("tenant")))

	assert.Equal(t,
		[]string{StageSessionLoader, "tenant", "auth", StagePagination, "audit"},
		app.Stages())

	_, err := app.Turn(context.Background(), &Request{Flow: "registration", SessionID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tenant", "auth", "audit"}, seen)
}

func TestAppObserverSeesTurns(t *testing.T) {
	metrics := &BasicMetrics{}
	app := NewInMemoryApp(WithObserver(metrics))
	registrationFlow().MustRegister(app)

	ctx := context.Background()
	_, err := app.Turn(ctx, &Request{Flow: "registration", SessionID: "u-1"})
	require.NoError(t, err)
	_, err = app.Turn(ctx, &Request{Flow: "registration", SessionID: "u-1", Input: ptr("John")})
	require.NoError(t, err)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(2), snap.TurnsStarted)
	assert.Equal(t, int64(2), snap.TurnsCompleted)
}

func TestAppContractViolationIsFatal(t *testing.T) {
	app := NewInMemoryApp()
	NewFlow("broken").
		Action("main", func(c *Context) error { return nil }).
		MustRegister(app)

	_, err := app.Turn(context.Background(), &Request{Flow: "broken", SessionID: "u-1"})
	require.Error(t, err)
	assert.True(t, api.IsContractViolation(err))
}
