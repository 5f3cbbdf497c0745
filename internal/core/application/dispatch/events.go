package dispatch

// Event is an inbound occurrence from the messaging channel. Exactly one
// of the concrete event types below flows into Router.HandleEvent per
// webhook delivery.
type Event interface {
	// ActorID identifies the sender's chat.
	EventActorID() string
}

// Actor carries the sender identity shared by all events.
type Actor struct {
	// ID is the channel chat id of the sender.
	ID string

	// DisplayName is the sender's visible name, used when creating
	// couriers and requesters lazily.
	DisplayName string
}

// TextMessage is a plain text message, possibly a forwarded one.
type TextMessage struct {
	Actor Actor
	Text  string

	// ForwardedFrom is the visible name of the original author when the
	// message was forwarded into the chat, empty otherwise. Admins forward
	// requester messages to open orders on their behalf.
	ForwardedFrom string
}

func (e TextMessage) EventActorID() string { return e.Actor.ID }

// LocationMessage is a shared location.
type LocationMessage struct {
	Actor Actor
	Lat   float64
	Lng   float64
}

func (e LocationMessage) EventActorID() string { return e.Actor.ID }

// MediaMessage is an uploaded image or document, referenced by the
// channel's opaque media id.
type MediaMessage struct {
	Actor    Actor
	MediaRef string
	Caption  string
}

func (e MediaMessage) EventActorID() string { return e.Actor.ID }

// InteractionEvent is a button press. Token is the raw interaction token;
// InteractionID acknowledges the press back to the channel; MessageRef
// lets handlers edit the message the button was attached to.
type InteractionEvent struct {
	Actor         Actor
	Token         string
	InteractionID string
	MessageRef    string
}

func (e InteractionEvent) EventActorID() string { return e.Actor.ID }
