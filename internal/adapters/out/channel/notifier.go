// Package channel delivers outbound messages to the messaging channel
// connector. The connector is a separate process that owns the actual
// chat transport; this adapter pushes deliveries to its HTTP bridge.
package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// BridgeNotifier implements ports.Notifier against the connector's HTTP
// bridge.
type BridgeNotifier struct {
	baseURL string
	client  *http.Client
}

// NewBridgeNotifier creates a notifier pushing to the bridge at baseURL.
func NewBridgeNotifier(baseURL string) (*BridgeNotifier, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &BridgeNotifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type sendRequest struct {
	ActorID  string              `json:"actor_id"`
	Text     string              `json:"text,omitempty"`
	MediaRef string              `json:"media_ref,omitempty"`
	Caption  string              `json:"caption,omitempty"`
	Layout   *ports.ButtonLayout `json:"layout,omitempty"`
}

type editRequest struct {
	ActorID    string              `json:"actor_id"`
	MessageRef string              `json:"message_ref"`
	Text       string              `json:"text"`
	Layout     *ports.ButtonLayout `json:"layout,omitempty"`
}

type ackRequest struct {
	InteractionID string `json:"interaction_id"`
	Text          string `json:"text,omitempty"`
}

type sendResponse struct {
	MessageRef string `json:"message_ref"`
}

// SendText delivers a text message through the bridge.
func (n *BridgeNotifier) SendText(
	ctx context.Context, actorID, text string, layout *ports.ButtonLayout,
) (string, error) {
	return n.send(ctx, "/send", sendRequest{ActorID: actorID, Text: text, Layout: layout})
}

// SendMedia delivers a stored media artifact through the bridge.
func (n *BridgeNotifier) SendMedia(
	ctx context.Context, actorID, mediaRef, caption string, layout *ports.ButtonLayout,
) (string, error) {
	return n.send(ctx, "/send", sendRequest{
		ActorID:  actorID,
		MediaRef: mediaRef,
		Caption:  caption,
		Layout:   layout,
	})
}

// EditMessage replaces a previously sent message in place.
func (n *BridgeNotifier) EditMessage(
	ctx context.Context, actorID, messageRef, text string, layout *ports.ButtonLayout,
) error {
	_, err := n.post(ctx, "/edit", editRequest{
		ActorID:    actorID,
		MessageRef: messageRef,
		Text:       text,
		Layout:     layout,
	})
	return err
}

// AnswerInteraction acknowledges a button press.
func (n *BridgeNotifier) AnswerInteraction(ctx context.Context, interactionID, text string) error {
	_, err := n.post(ctx, "/ack", ackRequest{InteractionID: interactionID, Text: text})
	return err
}

func (n *BridgeNotifier) send(ctx context.Context, path string, payload any) (string, error) {
	body, err := n.post(ctx, path, payload)
	if err != nil {
		return "", err
	}

	var resp sendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decoding bridge response: %w", err)
	}
	return resp.MessageRef, nil
}

func (n *BridgeNotifier) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bridge returned status %d for %s", resp.StatusCode, path)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
