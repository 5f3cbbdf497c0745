package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"dispatch/internal/core/ports"
)

// LogNotifier implements ports.Notifier by logging deliveries instead of
// sending them. Used for local runs without a connector bridge.
type LogNotifier struct {
	logger *slog.Logger
	seq    atomic.Int64
}

// NewLogNotifier creates a log-only notifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

// SendText logs the message and returns a synthetic reference.
func (n *LogNotifier) SendText(
	ctx context.Context, actorID, text string, layout *ports.ButtonLayout,
) (string, error) {
	n.logger.InfoContext(ctx, "outbound text",
		"actor_id", actorID,
		"text", text,
		"buttons", countButtons(layout))
	return n.nextRef(), nil
}

// SendMedia logs the delivery and returns a synthetic reference.
func (n *LogNotifier) SendMedia(
	ctx context.Context, actorID, mediaRef, caption string, layout *ports.ButtonLayout,
) (string, error) {
	n.logger.InfoContext(ctx, "outbound media",
		"actor_id", actorID,
		"media_ref", mediaRef,
		"caption", caption,
		"buttons", countButtons(layout))
	return n.nextRef(), nil
}

// EditMessage logs the edit.
func (n *LogNotifier) EditMessage(
	ctx context.Context, actorID, messageRef, text string, layout *ports.ButtonLayout,
) error {
	n.logger.InfoContext(ctx, "outbound edit",
		"actor_id", actorID,
		"message_ref", messageRef,
		"text", text)
	return nil
}

// AnswerInteraction logs the acknowledgement.
func (n *LogNotifier) AnswerInteraction(ctx context.Context, interactionID, text string) error {
	n.logger.InfoContext(ctx, "interaction ack",
		"interaction_id", interactionID,
		"text", text)
	return nil
}

func (n *LogNotifier) nextRef() string {
	return fmt.Sprintf("log-%d", n.seq.Add(1))
}

func countButtons(layout *ports.ButtonLayout) int {
	if layout == nil {
		return 0
	}
	total := 0
	for _, row := range layout.Rows {
		total += len(row)
	}
	return total
}
