package dashboardserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-order-dashboard/internal/realtime"
)

func TestChat_RelaysBodyVerbatim(t *testing.T) {
	srv := newTestServer(t)
	viewer := srv.hub.Connect()
	defer srv.hub.Disconnect(viewer)

	payload := "hello\n<script>"
	rec := srv.do(httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload)))
	require.Equal(t, http.StatusNoContent, rec.Code)

	msg := <-viewer.Outbound
	require.Equal(t, realtime.ChannelChat, msg.Channel)
	text, err := realtime.DecodeChat(msg)
	require.NoError(t, err)
	require.Equal(t, payload, text)
}

func TestChat_RejectsOversizedBody(t *testing.T) {
	srv := newTestServer(t)
	viewer := srv.hub.Connect(realtime.ChannelChat)
	defer srv.hub.Disconnect(viewer)

	body := bytes.Repeat([]byte("x"), MaxChatPayloadBytes+1)
	rec := srv.do(httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, viewer.Outbound, 0)
}

func TestChat_KeepsCarriageReturns(t *testing.T) {
	srv := newTestServer(t)
	viewer := srv.hub.Connect(realtime.ChannelChat)
	defer srv.hub.Disconnect(viewer)

	payload := "line1\rline2\r\nline3"
	rec := srv.do(httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload)))
	require.Equal(t, http.StatusNoContent, rec.Code)

	text, err := realtime.DecodeChat(<-viewer.Outbound)
	require.NoError(t, err)
	require.Equal(t, payload, text)
}

func TestChat_RejectsBinaryBody(t *testing.T) {
	srv := newTestServer(t)
	viewer := srv.hub.Connect(realtime.ChannelChat)
	defer srv.hub.Disconnect(viewer)

	rec := srv.do(httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte{0xff, 0xfe})))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, viewer.Outbound, 0)
}
