package realtime

import (
	"context"
	"encoding/json"
	"unicode/utf8"

	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

// ErrInvalidChatPayload rejects chat bodies that are not UTF-8 text.
var ErrInvalidChatPayload = apierrors.NewKindError(apierrors.KindValidation, "chat message must be UTF-8 text")

// ChatRelay echoes chat payloads to every connected session, the sender
// included. It is a connectivity demo channel with no authentication and no
// storage.
type ChatRelay struct {
	publisher Publisher
}

func NewChatRelay(publisher Publisher) *ChatRelay {
	return &ChatRelay{publisher: publisher}
}

// Relay forwards payload on ChannelChat as a JSON string. Decoding the event
// data yields payload byte for byte, line breaks included.
func (r *ChatRelay) Relay(ctx context.Context, payload []byte) error {
	if !utf8.Valid(payload) {
		return ErrInvalidChatPayload
	}
	data, err := json.Marshal(string(payload))
	if err != nil {
		return err
	}
	return r.publisher.Publish(ctx, Message{Channel: ChannelChat, Data: data})
}

// DecodeChat returns the text carried by a chat message.
func DecodeChat(msg Message) (string, error) {
	var text string
	err := json.Unmarshal(msg.Data, &text)
	return text, err
}
