package types

const (
	TypeWebsocketPing  = "ping"
	TypeWebsocketPong  = "pong"
	TypeWebsocketChat  = "chat"
	TypeWebsocketError = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketChatPayload struct {
	Content string `json:"content"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebSocketChatResponse struct {
	Message string `json:"message"`
}

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentFood    Intent = "food"
	IntentWeather Intent = "weather"
	IntentOther   Intent = "other"
)

// ParseIntent maps a raw classifier label onto an Intent. Anything the
// classifier is not supposed to emit falls back to IntentOther.
func ParseIntent(label string) Intent {
	switch Intent(label) {
	case IntentFood, IntentWeather, IntentOther:
		return Intent(label)
	default:
		return IntentOther
	}
}

// Message is a single stored conversation message.
type Message struct {
	ID        int64  `bson:"_id" json:"id"`
	IsAI      bool   `bson:"is_ai" json:"is_ai"`
	Content   string `bson:"content" json:"content"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}
