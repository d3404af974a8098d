package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompt(input *string, combine bool) *Prompt {
	req := &Request{Flow: "test", SessionID: "s-1", Input: input}
	c := NewContext(context.Background(), req, newFakeStore(), NoopObserver{}, ContextConfig{
		CombineValidationError: combine,
	})
	return &Prompt{c: c}
}

func TestAskWithoutInputRaisesPrompt(t *testing.T) {
	p := newTestPrompt(nil, true)

	_, err := p.Ask("What is your name?")
	msg, choices, _, ok := AsPrompt(err)
	require.True(t, ok)
	assert.Equal(t, "What is your name?", msg)
	assert.Nil(t, choices)
}

func TestAskReturnsTrimmedInput(t *testing.T) {
	p := newTestPrompt(strptr("  John  "), true)

	got, err := p.Ask("What is your name?")
	require.NoError(t, err)
	assert.Equal(t, "John", got)
}

func TestAskValidationFailureCombinesQuestion(t *testing.T) {
	digits := func(input string) error {
		for _, r := range input {
			if r < '0' || r > '9' {
				return errors.New("Please enter digits only.")
			}
		}
		return nil
	}

	p := newTestPrompt(strptr("abc"), true)
	_, err := p.Ask("How old are you?", WithValidators(digits))
	msg, _, _, ok := AsPrompt(err)
	require.True(t, ok)
	assert.Equal(t, "Please enter digits only.\n\nHow old are you?", msg)

	// With combining disabled only the validation message goes out.
	p = newTestPrompt(strptr("abc"), false)
	_, err = p.Ask("How old are you?", WithValidators(digits))
	msg, _, _, ok = AsPrompt(err)
	require.True(t, ok)
	assert.Equal(t, "Please enter digits only.", msg)
}

func TestSelect(t *testing.T) {
	choices := []Choice{
		{Key: "1", Label: "Check balance"},
		{Key: "2", Label: "Send money"},
	}

	// No input: prompt carries the question and the choices.
	p := newTestPrompt(nil, true)
	_, err := p.Select("Main menu", choices)
	msg, gotChoices, _, ok := AsPrompt(err)
	require.True(t, ok)
	assert.Equal(t, "Main menu", msg)
	assert.Equal(t, choices, gotChoices)

	// Exact key match returns the choice.
	p = newTestPrompt(strptr("2"), true)
	got, err := p.Select("Main menu", choices)
	require.NoError(t, err)
	assert.Equal(t, choices[1], got)

	// Anything else re-prompts.
	p = newTestPrompt(strptr("9"), true)
	_, err = p.Select("Main menu", choices)
	msg, _, _, ok = AsPrompt(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid selection.\n\nMain menu", msg)
}

func TestYesNo(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"1", true}, {"yes", true}, {"Y", true}, {" YES ", true},
		{"2", false}, {"no", false}, {"n", false},
	}
	for _, tc := range cases {
		p := newTestPrompt(strptr(tc.input), true)
		got, err := p.YesNo("Confirm transfer?")
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}

	p := newTestPrompt(nil, true)
	_, err := p.YesNo("Confirm transfer?")
	msg, choices, _, ok := AsPrompt(err)
	require.True(t, ok)
	assert.Equal(t, "Confirm transfer?", msg)
	require.Len(t, choices, 2)
	assert.Equal(t, Choice{Key: "1", Label: "Yes"}, choices[0])

	p = newTestPrompt(strptr("maybe"), true)
	_, err = p.YesNo("Confirm transfer?")
	msg, _, _, ok = AsPrompt(err)
	require.True(t, ok)
	assert.Equal(t, "Please answer Yes or No.\n\nConfirm transfer?", msg)
}
