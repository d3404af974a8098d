package api

import "strings"

// Validator checks one raw input value. A non-nil error is a recoverable
// validation failure: the prompt is re-raised carrying the error message.
type Validator func(input string) error

// MessageOption configures Ask, Select, YesNo and Say.
type MessageOption func(*messageOptions)

type messageOptions struct {
	media      *Media
	validators []Validator
}

// WithMedia attaches a media descriptor to the outgoing message.
func WithMedia(m *Media) MessageOption {
	return func(o *messageOptions) { o.media = m }
}

// WithValidators adds input validators, applied in order.
func WithValidators(vs ...Validator) MessageOption {
	return func(o *messageOptions) { o.validators = append(o.validators, vs...) }
}

func applyMessageOptions(opts []MessageOption) messageOptions {
	var o messageOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Prompt is the capability handed to a screen builder. It wraps the turn's
// raw input and raises Prompt signals when a value cannot be produced yet.
//
// Every convenience method follows the same contract: with no input
// present it raises a Prompt signal carrying the question; with invalid
// input it raises a Prompt signal carrying the validation message
// (optionally concatenated with the question); with valid input it returns
// the converted value.
type Prompt struct {
	c *Context
}

// Input returns the turn's raw input, if present and not yet consumed.
func (p *Prompt) Input() (string, bool) {
	return p.c.Input()
}

// reprompt builds the signal for a recoverable validation failure.
func (p *Prompt) reprompt(validationMsg, question string, choices []Choice, media *Media) error {
	msg := validationMsg
	if p.c.cfg.CombineValidationError && question != "" {
		msg = validationMsg + "\n\n" + question
	}
	return NewPromptSignal(msg, choices, media)
}

// Ask requests free-form text. The input is trimmed before validation.
func (p *Prompt) Ask(question string, opts ...MessageOption) (string, error) {
	o := applyMessageOptions(opts)

	raw, ok := p.Input()
	if !ok {
		return "", NewPromptSignal(question, nil, o.media)
	}
	input := strings.TrimSpace(raw)
	for _, validate := range o.validators {
		if err := validate(input); err != nil {
			return "", p.reprompt(err.Error(), question, nil, o.media)
		}
	}
	return input, nil
}

// Select asks the user to pick one of the given choices and returns the
// selected choice. Input must match a choice key exactly (after trimming).
func (p *Prompt) Select(question string, choices []Choice, opts ...MessageOption) (Choice, error) {
	o := applyMessageOptions(opts)

	raw, ok := p.Input()
	if !ok {
		return Choice{}, NewPromptSignal(question, choices, o.media)
	}
	input := strings.TrimSpace(raw)
	for _, choice := range choices {
		if input == choice.Key {
			return choice, nil
		}
	}
	return Choice{}, p.reprompt("Invalid selection.", question, choices, o.media)
}

// YesNo asks a yes/no question. It accepts "1"/"yes"/"y" and "2"/"no"/"n",
// case-insensitively.
func (p *Prompt) YesNo(question string, opts ...MessageOption) (bool, error) {
	o := applyMessageOptions(opts)
	choices := []Choice{
		{Key: "1", Label: "Yes"},
		{Key: "2", Label: "No"},
	}

	raw, ok := p.Input()
	if !ok {
		return false, NewPromptSignal(question, choices, o.media)
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "yes", "y":
		return true, nil
	case "2", "no", "n":
		return false, nil
	}
	return false, p.reprompt("Please answer Yes or No.", question, choices, o.media)
}
