// Package signal exposes the reference room service over WebSocket: one
// connection per user, JSON envelopes, acks correlated by sequence number.
package signal

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/openvoice/voiceroom/internal/domain"
	"github.com/openvoice/voiceroom/internal/service/local"
)

var ErrBackpressure = errors.New("backpressure")

const defaultPingPeriod = 54 * time.Second

// Controller bridges WS connections onto hub clients.
type Controller struct {
	Hub *local.Hub

	// Connection tuning; zero values fall back to defaults.
	ReadLimit  int64
	PingPeriod time.Duration
}

func NewController(hub *local.Hub) *Controller {
	return &Controller{Hub: hub}
}

type wsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) trySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and binds a hub client for the user
// named by the query parameters.
func (ctl *Controller) HandleSignal(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		uid = c.GetString("client_token")
	}
	name := c.Query("name")
	if name == "" {
		name = "guest"
	}
	log.Info().Str("module", "adapters.signal").Str("uid", uid).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "adapters.signal").Msg("ws upgrade")
		return
	}

	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &wsConn{
		conn: ws,
		send: make(chan []byte, 32),
	}
	client := ctl.Hub.Connect(domain.UserProfile{
		ID:        domain.UserID(uid),
		Name:      name,
		AvatarURL: c.Query("avatar"),
	})

	pingPeriod := ctl.PingPeriod
	if pingPeriod <= 0 {
		pingPeriod = defaultPingPeriod
	}
	sess := &session{conn: conn, client: client, pingPeriod: pingPeriod}
	client.SetListener(sess.onEvent)

	go sess.writePump()
	go sess.readPump()
}
