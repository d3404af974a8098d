package api

// Choice is one selectable option offered by a prompt.
type Choice struct {
	// Key is the input the user sends to pick this choice ("1", "2", ...).
	Key string
	// Label is the human-readable text shown for the choice.
	Label string
}

// Media describes an attachment referenced by a message. The engine never
// fetches media; it only carries the descriptor through to the transport.
type Media struct {
	// Type is a coarse category: "image", "audio", "video", "document".
	Type string
	// URL points at the media resource.
	URL string
}

// Response is the outcome of one turn, produced by the executor and
// post-processed by the pagination stage. Transport adapters convert it
// into their platform's wire format.
type Response struct {
	Kind    Kind
	Message string
	Choices []Choice
	Media   *Media
}

// Prompt reports whether the response asks the user for more input.
func (r *Response) Prompt() bool {
	return r.Kind == KindPrompt
}

// Terminal reports whether the response ends the conversation.
func (r *Response) Terminal() bool {
	return r.Kind == KindTerminal
}
