package ws_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aps-extract/extract-service/internal/model"
	"github.com/aps-extract/extract-service/internal/ws"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type hubMsg struct {
	Event          string  `json:"event"`
	ConnectionID   string  `json:"connectionId"`
	SessionID      string  `json:"sessionId"`
	DataType       string  `json:"dataType"`
	Guid           string  `json:"guid"`
	ParentFolderID *string `json:"parentFolderId"`
}

func dialHub(t *testing.T, hub *ws.Hub) (*websocket.Conn, string) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(hub.HandleConnection))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello hubMsg
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "connected", hello.Event)
	require.NotEmpty(t, hello.ConnectionID)

	return conn, hello.ConnectionID
}

func TestHub_NotifySessionReady(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())

	conn, connectionID := dialHub(t, hub)

	parent := "urn:f1"
	hub.NotifySessionReady(connectionID, "s1", model.DataTypeFolder, "g1", &parent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg hubMsg
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "sessionReady", msg.Event)
	assert.Equal(t, "s1", msg.SessionID)
	assert.Equal(t, "folder", msg.DataType)
	assert.Equal(t, "g1", msg.Guid)
	require.NotNil(t, msg.ParentFolderID)
	assert.Equal(t, "urn:f1", *msg.ParentFolderID)
}

func TestHub_TargetsExactlyOneSubscriber(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())

	connA, idA := dialHub(t, hub)
	connB, _ := dialHub(t, hub)

	hub.NotifySessionReady(idA, "s1", model.DataTypeTopFolders, "g1", nil)

	connA.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg hubMsg
	require.NoError(t, connA.ReadJSON(&msg))
	assert.Equal(t, "s1", msg.SessionID)

	connB.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var stray hubMsg
	require.Error(t, connB.ReadJSON(&stray))
}

func TestHub_GoneSubscriberIsDropped(t *testing.T) {
	hub := ws.NewHub(zap.NewNop())

	// never registered: must not panic, the message is just lost
	hub.NotifySessionReady("no-such-connection", "s1", model.DataTypeTopFolders, "g1", nil)
}
