package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-order-dashboard/internal/realtime"
)

func TestBroadcaster_SendsIdenticalBytesToEverySession(t *testing.T) {
	hub := realtime.NewHub()
	a := hub.Connect(realtime.ChannelOrders)
	b := hub.Connect(realtime.ChannelOrders)
	chat := hub.Connect(realtime.ChannelChat)
	defer hub.Disconnect(a)
	defer hub.Disconnect(b)
	defer hub.Disconnect(chat)

	view := &types.OrderView{ID: "X", OrderNumber: 7, LineItems: []types.LineItemView{{ID: "li1", Images: []types.Image{}}}}
	require.NoError(t, NewBroadcaster(hub).PublishOrderView(context.Background(), view))

	first := <-a.Outbound
	second := <-b.Outbound
	require.Equal(t, realtime.ChannelOrders, first.Channel)
	require.Equal(t, first.Data, second.Data)
	require.Len(t, chat.Outbound, 0)

	var decoded types.OrderView
	require.NoError(t, json.Unmarshal(first.Data, &decoded))
	require.Equal(t, *view, decoded)
}

func TestBroadcaster_RejectsNilView(t *testing.T) {
	require.Error(t, NewBroadcaster(realtime.NewHub()).PublishOrderView(context.Background(), nil))
}
