package line

// SignatureHeader carries the base64 HMAC-SHA256 of the raw request
// body, computed with the channel secret.
const SignatureHeader = "X-Line-Signature"

// Inbound event types handled by the gateway.
const (
	EventTypeFollow   = "follow"
	EventTypeMessage  = "message"
	EventTypePostback = "postback"

	MessageTypeText = "text"
)

// WebhookRequest is the envelope of one webhook delivery. A delivery
// with zero events is the platform's endpoint-verification ping.
type WebhookRequest struct {
	Destination string         `json:"destination"`
	Events      []WebhookEvent `json:"events"`
}

// WebhookEvent is a single platform event. Events inside one request
// are processed sequentially in delivery order.
type WebhookEvent struct {
	Type           string       `json:"type"`
	WebhookEventID string       `json:"webhookEventId,omitempty"`
	ReplyToken     string       `json:"replyToken,omitempty"`
	Source         EventSource  `json:"source"`
	Timestamp      int64        `json:"timestamp,omitempty"`
	Message        *TextContent `json:"message,omitempty"`
	Postback       *Postback    `json:"postback,omitempty"`
}

// EventSource identifies the sender of an event.
type EventSource struct {
	Type    string `json:"type"`
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

// TextContent is the message part of a message event. Only text
// messages are routed; other message types are ignored.
type TextContent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

// Postback is a button press, carrying the opaque payload string this
// gateway embedded when it built the button.
type Postback struct {
	Data string `json:"data"`
}
