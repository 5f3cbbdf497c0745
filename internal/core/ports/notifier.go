package ports

import "context"

// Button is one pressable element of a message layout. Token carries the
// interaction token delivered back when the button is pressed;
// RequestLocation asks the client to share coordinates instead.
type Button struct {
	Label           string
	Token           string
	RequestLocation bool
}

// ButtonLayout is a grid of buttons attached to an outbound message, one
// slice per row.
type ButtonLayout struct {
	Rows [][]Button

	// Persistent keeps the layout pinned next to the input field instead
	// of attaching it to a single message.
	Persistent bool
}

// NewButtonLayout builds a layout from rows of buttons.
func NewButtonLayout(rows ...[]Button) *ButtonLayout {
	return &ButtonLayout{Rows: rows}
}

// Notifier is the outbound messaging contract. Implementations deliver to
// the actual channel; the dispatch core treats every call as best-effort
// and never lets a delivery failure corrupt workflow state.
type Notifier interface {
	// SendText delivers a text message to the actor, optionally with a
	// button layout. Returns the channel's message reference.
	SendText(ctx context.Context, actorID string, text string, layout *ButtonLayout) (string, error)

	// SendMedia delivers a stored media artifact (by its opaque channel
	// reference) with an optional caption and layout.
	SendMedia(ctx context.Context, actorID string, mediaRef, caption string, layout *ButtonLayout) (string, error)

	// EditMessage replaces the text and layout of a previously sent
	// message in place.
	EditMessage(ctx context.Context, actorID string, messageRef, text string, layout *ButtonLayout) error

	// AnswerInteraction acknowledges a button press so the client stops
	// its progress indicator. The text, when not empty, is shown as a
	// transient notice.
	AnswerInteraction(ctx context.Context, interactionID string, text string) error
}
