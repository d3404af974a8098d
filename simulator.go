package sema

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/davidenyagah/sema/internal/engine"
	"github.com/davidenyagah/sema/pkg/api"
)

// Simulator drives an App turn by turn from a single process, standing in
// for a real transport. It is intended for local development, tests, and
// flow debugging.
//
// Typical usage:
//
//	sim := sema.NewSimulator(app, "registration")
//	resp, _ := sim.Start(ctx)
//	resp, _ = sim.Send(ctx, "John")
//	fmt.Println(sim.Transcript())
type Simulator struct {
	app  *App
	flow string

	sessionID  string
	metadata   map[string]any
	transcript []TranscriptEntry
	done       bool
}

// TranscriptEntry records one exchange of a simulated conversation. Input
// is nil for the session-initiating turn.
type TranscriptEntry struct {
	Input    *string
	Response *Response
}

// SimulatorOption configures a Simulator at construction time.
type SimulatorOption func(*Simulator)

// WithSessionID pins the simulated session to a fixed id instead of a
// generated one. Useful when a test needs to inspect the session store.
func WithSessionID(id string) SimulatorOption {
	return func(s *Simulator) { s.sessionID = id }
}

// WithSimulatorMetadata sets the metadata attached to every simulated turn.
func WithSimulatorMetadata(md map[string]any) SimulatorOption {
	return func(s *Simulator) { s.metadata = md }
}

// NewSimulator creates a Simulator for one conversation with the named
// flow. Each Simulator holds exactly one session; create another to
// simulate a second user.
func NewSimulator(app *App, flow string, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		app:       app,
		flow:      flow,
		sessionID: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionID returns the id of the simulated session.
func (s *Simulator) SessionID() string {
	return s.sessionID
}

// Done reports whether the conversation has reached a terminal response.
func (s *Simulator) Done() bool {
	return s.done
}

// Start runs the session-initiating turn (no input) and returns the first
// response.
func (s *Simulator) Start(ctx context.Context) (*Response, error) {
	return s.turn(ctx, nil)
}

// Send delivers one user input and returns the resulting response.
func (s *Simulator) Send(ctx context.Context, input string) (*Response, error) {
	return s.turn(ctx, &input)
}

func (s *Simulator) turn(ctx context.Context, input *string) (*Response, error) {
	if s.done {
		return nil, fmt.Errorf("sema: session %s already terminated", s.sessionID)
	}

	req := &api.Request{
		Flow:      s.flow,
		SessionID: s.sessionID,
		Input:     input,
		Metadata:  api.NewMetadata(s.metadata),
	}
	resp, err := s.app.Turn(ctx, req)
	if err != nil {
		return nil, err
	}

	s.transcript = append(s.transcript, TranscriptEntry{Input: input, Response: resp})
	if resp.Kind == KindTerminal {
		s.done = true
	}
	return resp, nil
}

// Transcript returns the recorded exchanges so far, oldest first.
func (s *Simulator) Transcript() []TranscriptEntry {
	out := make([]TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Dump renders the transcript as plain text, one exchange per block, the
// way it would appear on a phone. Handy in example programs.
func (s *Simulator) Dump() string {
	var b strings.Builder
	for i, e := range s.transcript {
		if i > 0 {
			b.WriteString("\n")
		}
		if e.Input != nil {
			fmt.Fprintf(&b, "> %s\n", *e.Input)
		} else {
			b.WriteString("> (dial)\n")
		}
		b.WriteString(engine.RenderText(e.Response))
		b.WriteString("\n")
	}
	return b.String()
}
