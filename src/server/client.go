package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	maxMessageSize = 1024 * 1024 // 1MB for larger JSON messages
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------
// Client Structure
// -----------------------------------------------------------------------------

type Client struct {
	server *BenchmarkServer
	conn   *websocket.Conn
	frames int64
}

// -----------------------------------------------------------------------------
// readPump - receives JSON frames and drops them until the peer goes away
// -----------------------------------------------------------------------------

func (c *Client) readPump() {
	defer func() {
		c.server.unregister(c)
		c.conn.Close()
		c.server.Logger.Debug("WebSocket client disconnected after %d frames", c.frames)
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		var frame interface{}
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				c.server.Logger.Info("WebSocket error: %v", err)
			}
			return
		}
		c.frames++
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

func (s *BenchmarkServer) handleWebSocket(c *gin.Context) {
	// A plain GET /ws is ordinary traffic.
	if !c.IsWebsocket() {
		s.catchAll(c)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{server: s, conn: conn}
	s.register(client)

	go client.readPump()
}

// -----------------------------------------------------------------------------

func (s *BenchmarkServer) register(c *Client) {
	s.clientsMutex.Lock()
	s.clients[c] = struct{}{}
	s.clientsMutex.Unlock()
}

func (s *BenchmarkServer) unregister(c *Client) {
	s.clientsMutex.Lock()
	delete(s.clients, c)
	s.clientsMutex.Unlock()
}

// -----------------------------------------------------------------------------

// Connections returns the number of open WebSocket sessions.
func (s *BenchmarkServer) Connections() int {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	return len(s.clients)
}

// -----------------------------------------------------------------------------

// closeClients ends every session; readPump then unregisters each one.
func (s *BenchmarkServer) closeClients() {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	for c := range s.clients {
		c.conn.Close()
	}
}
