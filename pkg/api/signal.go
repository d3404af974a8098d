package api

import (
	"errors"
	"fmt"
)

// Kind classifies the outcome of a turn.
type Kind string

const (
	// KindPrompt means the conversation needs more input from the user.
	KindPrompt Kind = "PROMPT"

	// KindTerminal means the conversation is over for this session.
	KindTerminal Kind = "TERMINAL"
)

// promptSignal is raised by a screen builder that cannot produce a value
// yet. It carries the question to send back to the user.
type promptSignal struct {
	Message string
	Choices []Choice
	Media   *Media
}

func (e *promptSignal) Error() string {
	return "prompt: " + e.Message
}

// terminateSignal is raised by Say. It unconditionally ends the
// conversation for this session.
type terminateSignal struct {
	Message string
	Media   *Media
}

func (e *terminateSignal) Error() string {
	return "terminate: " + e.Message
}

// restartSignal is raised by GoBack. It tells the executor to re-invoke the
// same entry action immediately, within the same turn.
type restartSignal struct{}

func (e *restartSignal) Error() string {
	return "restart flow"
}

// NewPromptSignal builds a Prompt signal. It is primarily used by the
// Prompt convenience methods, but custom builders may raise it directly.
func NewPromptSignal(message string, choices []Choice, media *Media) error {
	return &promptSignal{Message: message, Choices: choices, Media: media}
}

// NewTerminateSignal builds a Terminate signal carrying the final message.
func NewTerminateSignal(message string, media *Media) error {
	return &terminateSignal{Message: message, Media: media}
}

// NewRestartSignal builds a RestartFlow signal.
func NewRestartSignal() error {
	return &restartSignal{}
}

// AsPrompt returns the prompt payload if err is (or wraps) a Prompt signal.
func AsPrompt(err error) (message string, choices []Choice, media *Media, ok bool) {
	var p *promptSignal
	if errors.As(err, &p) {
		return p.Message, p.Choices, p.Media, true
	}
	return "", nil, nil, false
}

// AsTerminate returns the terminal payload if err is (or wraps) a
// Terminate signal.
func AsTerminate(err error) (message string, media *Media, ok bool) {
	var t *terminateSignal
	if errors.As(err, &t) {
		return t.Message, t.Media, true
	}
	return "", nil, false
}

// IsRestart reports whether err is (or wraps) a RestartFlow signal.
func IsRestart(err error) bool {
	var r *restartSignal
	return errors.As(err, &r)
}

// IsSignal reports whether err is one of the three control-flow signals.
// Any other error is a real failure and must be propagated as-is.
func IsSignal(err error) bool {
	if _, _, _, ok := AsPrompt(err); ok {
		return true
	}
	if _, _, ok := AsTerminate(err); ok {
		return true
	}
	return IsRestart(err)
}

// ContractViolationError marks a programming error in user flow code:
// a duplicate screen key within one replay, a nil screen builder, or an
// action that returns without raising any signal. These are fatal for the
// turn and are never converted into a user-facing response.
type ContractViolationError struct {
	Reason string
}

func (e *ContractViolationError) Error() string {
	return "flow contract violation: " + e.Reason
}

// NewContractViolation builds a ContractViolationError with a formatted reason.
func NewContractViolation(format string, args ...any) error {
	return &ContractViolationError{Reason: fmt.Sprintf(format, args...)}
}

// IsContractViolation reports whether err is a flow contract violation.
func IsContractViolation(err error) bool {
	var c *ContractViolationError
	return errors.As(err, &c)
}
