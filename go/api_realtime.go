package dashboardserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/go-gin-order-dashboard/internal/realtime"
	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

// MaxChatPayloadBytes caps a relayed chat message.
const MaxChatPayloadBytes = 64 << 10

// RealtimeAPI serves the viewer stream and the chat relay.
type RealtimeAPI struct {
	hub  *realtime.Hub
	chat *realtime.ChatRelay
}

func NewRealtimeAPI(hub *realtime.Hub, chat *realtime.ChatRelay) RealtimeAPI {
	return RealtimeAPI{hub: hub, chat: chat}
}

// Get /realtime
// Streams orders and chat events. Repeat ?channel= to narrow the subscription.
func (api *RealtimeAPI) Stream(c *gin.Context) {
	client := api.hub.Connect(c.QueryArray("channel")...)
	defer api.hub.Disconnect(client)
	api.hub.ServeSSE(c.Writer, c.Request, client)
}

// Post /chat
// Relays the raw body to every connected viewer.
func (api *RealtimeAPI) Chat(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, MaxChatPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondProblem(c, apierrors.ErrBadRequest.
				WithDetail("chat message too large").
				WithExtension("limit", MaxChatPayloadBytes))
			return
		}
		responder.BadRequest(c, "unreadable chat body")
		return
	}
	if err := api.chat.Relay(c.Request.Context(), payload); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
