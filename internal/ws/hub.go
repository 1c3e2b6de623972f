package ws

import (
	"net/http"
	"sync"

	"github.com/aps-extract/extract-service/internal/model"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub tracks open websocket connections by connection id. The id doubles as
// the correlation id extract jobs are targeted at.
type Hub struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	clients map[string]*client
}

// gorilla allows a single concurrent writer per connection, so every client
// carries its own write lock.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[string]*client),
	}
}

type connectedMsg struct {
	Event        string `json:"event"`
	ConnectionID string `json:"connectionId"`
}

type sessionReadyMsg struct {
	Event          string         `json:"event"`
	SessionID      string         `json:"sessionId"`
	DataType       model.DataType `json:"dataType"`
	Guid           string         `json:"guid"`
	ParentFolderID *string        `json:"parentFolderId"`
}

// HandleConnection upgrades the request, assigns the connection its id and
// blocks reading until the peer goes away.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Sugar().Errorf("failed to upgrade connection: %s", err.Error())
		return
	}
	defer conn.Close()

	connectionID := uuid.NewString()

	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[connectionID] = c
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, connectionID)
		h.mu.Unlock()
	}()

	c.mu.Lock()
	err = conn.WriteJSON(connectedMsg{Event: "connected", ConnectionID: connectionID})
	c.mu.Unlock()
	if err != nil {
		h.logger.Sugar().Errorf("failed to greet connection(%s): %s", connectionID, err.Error())
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// NotifySessionReady delivers the one-shot ready message to exactly the
// subscriber registered under connectionID. Delivery is fire-and-forget: a
// gone subscriber just loses the message.
func (h *Hub) NotifySessionReady(connectionID, sessionID string, dataType model.DataType, guid string, parentFolderID *string) {
	h.mu.RLock()
	c, ok := h.clients[connectionID]
	h.mu.RUnlock()

	if !ok {
		h.logger.Sugar().Warnf("no subscriber for connection(%s), dropping session(%s) notification", connectionID, sessionID)
		return
	}

	msg := sessionReadyMsg{
		Event:          "sessionReady",
		SessionID:      sessionID,
		DataType:       dataType,
		Guid:           guid,
		ParentFolderID: parentFolderID,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(msg); err != nil {
		h.logger.Sugar().Errorf("failed to notify connection(%s) about session(%s): %s", connectionID, sessionID, err.Error())
	}
}
