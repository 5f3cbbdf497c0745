package dispatch

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Gateway wraps the notifier port with the delivery policy of the dispatch
// core: notification failures are logged and swallowed, never propagated,
// so a dead chat can not corrupt workflow state that already changed.
type Gateway struct {
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewGateway wraps the notifier.
func NewGateway(notifier ports.Notifier, logger *slog.Logger) *Gateway {
	return &Gateway{notifier: notifier, logger: logger}
}

// Send delivers a text message, best effort. Returns the message ref, empty
// on failure.
func (g *Gateway) Send(ctx context.Context, actorID, text string, layout *ports.ButtonLayout) string {
	ref, err := g.notifier.SendText(ctx, actorID, text, layout)
	if err != nil {
		g.logger.Error("notification failed",
			"actor_id", actorID,
			"error", err)
		return ""
	}
	return ref
}

// SendMedia delivers a media artifact, best effort.
func (g *Gateway) SendMedia(ctx context.Context, actorID, mediaRef, caption string, layout *ports.ButtonLayout) {
	if _, err := g.notifier.SendMedia(ctx, actorID, mediaRef, caption, layout); err != nil {
		g.logger.Error("media notification failed",
			"actor_id", actorID,
			"error", err)
	}
}

// Edit replaces a previously sent message in place, best effort.
func (g *Gateway) Edit(ctx context.Context, actorID, messageRef, text string, layout *ports.ButtonLayout) {
	if err := g.notifier.EditMessage(ctx, actorID, messageRef, text, layout); err != nil {
		g.logger.Error("message edit failed",
			"actor_id", actorID,
			"message_ref", messageRef,
			"error", err)
	}
}

// Ack acknowledges a button press, best effort. An empty interaction id is
// a no-op so handlers can call it unconditionally.
func (g *Gateway) Ack(ctx context.Context, interactionID, text string) {
	if interactionID == "" {
		return
	}
	if err := g.notifier.AnswerInteraction(ctx, interactionID, text); err != nil {
		g.logger.Error("interaction ack failed",
			"interaction_id", interactionID,
			"error", err)
	}
}

// Broadcast delivers the same message to every admin.
func (g *Gateway) Broadcast(ctx context.Context, admins []kernel.ActorID, text string, layout *ports.ButtonLayout) {
	for _, id := range admins {
		g.Send(ctx, id.String(), text, layout)
	}
}
