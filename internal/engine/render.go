package engine

import (
	"strings"

	"github.com/davidenyagah/sema/pkg/api"
)

// RenderText flattens a response into a single outgoing text in the fixed
// order: message, choice list, media descriptor.
func RenderText(resp *api.Response) string {
	var b strings.Builder
	b.WriteString(resp.Message)

	if len(resp.Choices) > 0 {
		b.WriteString("\n")
		for _, c := range resp.Choices {
			b.WriteString("\n")
			b.WriteString(c.Key)
			b.WriteString(". ")
			b.WriteString(c.Label)
		}
	}

	if resp.Media != nil && resp.Media.URL != "" {
		b.WriteString("\n\n")
		b.WriteString(resp.Media.URL)
	}

	return b.String()
}

// Flattened returns a copy of resp with choices and media folded into the
// message text. Used whenever a transport cannot carry structured choices,
// and always inside pagination.
func Flattened(resp *api.Response) *api.Response {
	return &api.Response{
		Kind:    resp.Kind,
		Message: RenderText(resp),
	}
}
