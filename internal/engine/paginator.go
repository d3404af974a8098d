package engine

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/davidenyagah/sema/pkg/api"
)

// PaginationStateKey is the reserved session key holding pagination state.
// Flow code must not touch it.
const PaginationStateKey = "sema.pagination"

// PaginationConfig configures the pagination stage. MaxPageSize is a hard
// budget in runes for the whole outgoing text, footer included.
type PaginationConfig struct {
	MaxPageSize int

	// NextToken is the raw input that requests the next page; NextLabel is
	// the control text shown in the footer. Back* mirror them.
	NextToken string
	NextLabel string
	BackToken string
	BackLabel string

	// InlineChoiceLimit is the largest choice list a response may keep in
	// structured form. Longer lists (and everything that needs splitting)
	// are flattened into the message text.
	InlineChoiceLimit int
}

func (c PaginationConfig) validate() error {
	if c.MaxPageSize <= 0 {
		return fmt.Errorf("pagination: MaxPageSize must be positive, got %d", c.MaxPageSize)
	}
	return nil
}

// pageOffset is the rune range [Start, Finish) of one page within the full
// rendered text.
type pageOffset struct {
	Start  int `json:"start" mapstructure:"start"`
	Finish int `json:"finish" mapstructure:"finish"`
}

// paginationState is persisted under PaginationStateKey between turns of a
// paginated message. Offsets for visited pages are stable: once recorded
// they are never recomputed.
type paginationState struct {
	Page    int                `json:"page" mapstructure:"page"`
	Offsets map[int]pageOffset `json:"offsets" mapstructure:"offsets"`
	Text    string             `json:"text" mapstructure:"text"`
	Kind    string             `json:"kind" mapstructure:"kind"`
}

// Pagination returns the built-in stage that bounds every outgoing message
// to MaxPageSize runes, splitting oversized output into navigable pages.
func Pagination(cfg PaginationConfig) api.Middleware {
	return api.Middleware{
		Name: api.StagePagination,
		Wrap: func(next api.Handler) api.Handler {
			p := &paginator{cfg: cfg}
			return func(ctx context.Context, turn *api.Turn) (*api.Response, error) {
				return p.handle(ctx, turn, next)
			}
		},
	}
}

type paginator struct {
	cfg PaginationConfig
}

func (p *paginator) handle(ctx context.Context, turn *api.Turn, next api.Handler) (*api.Response, error) {
	if err := p.cfg.validate(); err != nil {
		return nil, err
	}

	// A turn is a navigation turn only when the raw input is one of the
	// pagination tokens and a pagination state exists for this session.
	if input := turn.Request.Input; input != nil {
		if *input == p.cfg.NextToken || *input == p.cfg.BackToken {
			st, found, err := p.loadState(ctx, turn.Session)
			if err != nil {
				return nil, err
			}
			if found {
				return p.navigate(ctx, turn.Session, st, *input)
			}
		}
	}

	resp, err := next(ctx, turn)
	if err != nil {
		return nil, err
	}
	return p.fresh(ctx, turn.Session, resp)
}

// fresh handles a new response from the executor: any prior pagination
// state is discarded and page 1 of the newly rendered text is computed.
func (p *paginator) fresh(ctx context.Context, session api.SessionStore, resp *api.Response) (*api.Response, error) {
	full := RenderText(resp)
	runes := []rune(full)

	if len(runes) <= p.cfg.MaxPageSize {
		// Fits in one page: nothing to navigate, so no state is kept and
		// pagination tokens in later answers are not intercepted.
		if err := session.Delete(ctx, PaginationStateKey); err != nil {
			return nil, err
		}
		if len(resp.Choices) > p.cfg.InlineChoiceLimit {
			return Flattened(resp), nil
		}
		return resp, nil
	}

	st := &paginationState{
		Page:    1,
		Offsets: map[int]pageOffset{},
		Text:    full,
		Kind:    string(resp.Kind),
	}
	st.Offsets[1] = p.computePage(runes, 0, 1)

	return p.render(ctx, session, st)
}

// navigate serves a next/back turn from the stored state without
// re-invoking the executor.
func (p *paginator) navigate(ctx context.Context, session api.SessionStore, st *paginationState, input string) (*api.Response, error) {
	runes := []rune(st.Text)
	current := st.Offsets[st.Page]

	switch input {
	case p.cfg.NextToken:
		if current.Finish >= len(runes) {
			// Already on the final page; re-render it rather than compute
			// an empty page past the end.
			break
		}
		target := st.Page + 1
		if _, known := st.Offsets[target]; !known {
			st.Offsets[target] = p.computePage(runes, current.Finish, target)
		}
		st.Page = target
	case p.cfg.BackToken:
		// Pages are only visited in increasing order before being
		// revisited, so the target offsets are always known.
		if st.Page > 1 {
			st.Page--
		}
	}

	return p.render(ctx, session, st)
}

// render builds the outgoing text for the state's current page, persists
// or clears the state, and applies the effective-kind rule: any page that
// is not the last is a prompt regardless of the original kind.
func (p *paginator) render(ctx context.Context, session api.SessionStore, st *paginationState) (*api.Response, error) {
	runes := []rune(st.Text)
	off := st.Offsets[st.Page]
	last := off.Finish >= len(runes)

	text := string(runes[off.Start:off.Finish]) + p.footer(st.Page > 1, !last)

	kind := api.KindPrompt
	if last {
		kind = api.Kind(st.Kind)
	}

	if last && kind == api.KindTerminal {
		if err := session.Delete(ctx, PaginationStateKey); err != nil {
			return nil, err
		}
	} else {
		if err := session.Set(ctx, PaginationStateKey, st); err != nil {
			return nil, err
		}
	}

	return &api.Response{Kind: kind, Message: text}, nil
}

// footer renders the navigation controls appended to a page.
func (p *paginator) footer(hasBack, hasNext bool) string {
	var parts []string
	if hasBack {
		parts = append(parts, p.cfg.BackToken+" "+p.cfg.BackLabel)
	}
	if hasNext {
		parts = append(parts, p.cfg.NextToken+" "+p.cfg.NextLabel)
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(parts, "\n")
}

// computePage finds the offsets of one page starting at start.
//
// A boundary split records Finish at the whitespace rune itself, so
// continuation pages first skip any leading whitespace left behind by the
// previous page's split; their text never opens with the split rune.
//
// If the rest of the text (plus the footer a final page carries) fits
// within the budget, the page runs to the end. Otherwise it scans backward
// from the budget limit for the greatest finish whose rune is a
// whitespace/newline boundary; if none exists in range it falls back to a
// hard cut at the limit. Offsets are rune indices, so a forced hard cut
// lands on the nearest codepoint boundary: a combining sequence may split
// across pages, but never the bytes of a single codepoint.
//
// The result is a pure function of (text, start, page, config), which is
// what keeps previously computed offsets stable.
func (p *paginator) computePage(runes []rune, start, page int) pageOffset {
	if page > 1 {
		for start < len(runes) && unicode.IsSpace(runes[start]) {
			start++
		}
	}
	remaining := len(runes) - start

	finalFooter := len([]rune(p.footer(page > 1, false)))
	if remaining+finalFooter <= p.cfg.MaxPageSize {
		return pageOffset{Start: start, Finish: len(runes)}
	}

	budget := p.cfg.MaxPageSize - len([]rune(p.footer(page > 1, true)))
	if budget < 1 {
		budget = 1
	}
	limit := start + budget
	if limit >= len(runes) {
		limit = len(runes) - 1
	}

	for finish := limit; finish > start; finish-- {
		if unicode.IsSpace(runes[finish]) {
			return pageOffset{Start: start, Finish: finish}
		}
	}

	// No boundary in range: hard cut.
	return pageOffset{Start: start, Finish: limit}
}

// loadState reads the persisted pagination state, rehydrating it after a
// JSON round-trip through the store.
func (p *paginator) loadState(ctx context.Context, session api.SessionStore) (*paginationState, bool, error) {
	v, err := session.Get(ctx, PaginationStateKey)
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}
	if st, ok := v.(*paginationState); ok {
		return st, true, nil
	}
	var st paginationState
	if err := api.Decode(v, &st); err != nil {
		return nil, false, fmt.Errorf("corrupt pagination state: %w", err)
	}
	if st.Offsets == nil {
		st.Offsets = map[int]pageOffset{}
	}
	return &st, true, nil
}
