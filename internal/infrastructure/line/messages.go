package line

// Reply message types for the Messaging API. Only the subset the
// gateway actually sends is modeled: plain text and flex
// (bubble/carousel) messages.

// Message is any outbound reply message.
type Message interface {
	messageType() string
}

// TextMessage is a plain text reply.
type TextMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (TextMessage) messageType() string { return "text" }

// NewTextMessage builds a text reply.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// FlexMessage is a structured reply. AltText is shown in notification
// previews and on clients that cannot render flex containers.
type FlexMessage struct {
	Type     string        `json:"type"`
	AltText  string        `json:"altText"`
	Contents FlexContainer `json:"contents"`
}

func (FlexMessage) messageType() string { return "flex" }

// NewFlexMessage wraps a container in a flex reply.
func NewFlexMessage(altText string, contents FlexContainer) FlexMessage {
	return FlexMessage{Type: "flex", AltText: altText, Contents: contents}
}

// FlexContainer is a bubble or a carousel of bubbles.
type FlexContainer interface {
	containerType() string
}

// Bubble is a single card with optional header, body and footer boxes.
type Bubble struct {
	Type   string `json:"type"`
	Size   string `json:"size,omitempty"`
	Header *Box   `json:"header,omitempty"`
	Body   *Box   `json:"body,omitempty"`
	Footer *Box   `json:"footer,omitempty"`
}

func (*Bubble) containerType() string { return "bubble" }

// NewBubble builds an empty bubble.
func NewBubble() *Bubble {
	return &Bubble{Type: "bubble"}
}

// Carousel is a horizontal strip of up to twelve bubbles.
type Carousel struct {
	Type     string    `json:"type"`
	Contents []*Bubble `json:"contents"`
}

func (*Carousel) containerType() string { return "carousel" }

// NewCarousel builds a carousel from bubbles.
func NewCarousel(bubbles ...*Bubble) *Carousel {
	return &Carousel{Type: "carousel", Contents: bubbles}
}

// FlexComponent is any node inside a box (text, button, box,
// separator). Components carry their own type discriminator, so they
// marshal as-is.
type FlexComponent interface {
	componentType() string
}

// Box lays out child components vertically, horizontally or as
// baseline-aligned text.
type Box struct {
	Type            string          `json:"type"`
	Layout          string          `json:"layout"`
	Contents        []FlexComponent `json:"contents"`
	Spacing         string          `json:"spacing,omitempty"`
	Margin          string          `json:"margin,omitempty"`
	PaddingAll      string          `json:"paddingAll,omitempty"`
	BackgroundColor string          `json:"backgroundColor,omitempty"`
	Flex            *int            `json:"flex,omitempty"`
}

func (*Box) componentType() string { return "box" }

// NewBox builds a box with the given layout and contents.
func NewBox(layout string, contents ...FlexComponent) *Box {
	return &Box{Type: "box", Layout: layout, Contents: contents}
}

// Text is a text node.
type Text struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Size    string `json:"size,omitempty"`
	Weight  string `json:"weight,omitempty"`
	Color   string `json:"color,omitempty"`
	Align   string `json:"align,omitempty"`
	Margin  string `json:"margin,omitempty"`
	Wrap    bool   `json:"wrap,omitempty"`
	Flex    *int   `json:"flex,omitempty"`
	Gravity string `json:"gravity,omitempty"`
}

func (*Text) componentType() string { return "text" }

// NewText builds a text node.
func NewText(text string) *Text {
	return &Text{Type: "text", Text: text}
}

// Button renders a tappable action.
type Button struct {
	Type   string `json:"type"`
	Action Action `json:"action"`
	Style  string `json:"style,omitempty"`
	Color  string `json:"color,omitempty"`
	Height string `json:"height,omitempty"`
	Margin string `json:"margin,omitempty"`
	Flex   *int   `json:"flex,omitempty"`
}

func (*Button) componentType() string { return "button" }

// Separator draws a divider line.
type Separator struct {
	Type   string `json:"type"`
	Margin string `json:"margin,omitempty"`
}

func (*Separator) componentType() string { return "separator" }

// Action is a postback or message action attached to a button. For
// postbacks, Data round-trips all state the next step needs; nothing
// is kept server-side between events.
type Action struct {
	Type        string `json:"type"`
	Label       string `json:"label,omitempty"`
	Data        string `json:"data,omitempty"`
	DisplayText string `json:"displayText,omitempty"`
	Text        string `json:"text,omitempty"`
}

// NewPostbackAction builds a postback action.
func NewPostbackAction(label, data string) Action {
	return Action{Type: "postback", Label: label, Data: data}
}

// NewPostbackButton builds a button wrapping a postback action.
func NewPostbackButton(label, data, style string) *Button {
	return &Button{Type: "button", Action: NewPostbackAction(label, data), Style: style}
}

// IntPtr is a helper for the optional flex weights.
func IntPtr(v int) *int { return &v }
