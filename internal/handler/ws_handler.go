package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/geoindex/internal/engine"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = 54 * time.Second // Must be less than pongWait
	maxMsgSize  = 4096
	sendBufSize = 8
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS handled by middleware; tighten in production
	},
}

// WSConn wraps one search WebSocket connection.
type WSConn struct {
	conn *websocket.Conn
	send chan []byte
}

// searchQuery is one type-ahead request frame sent by the client.
type searchQuery struct {
	Q     string `json:"q"`
	Limit int    `json:"limit"`
}

// WSHandler serves GET /api/v1/search/ws: a single-connection,
// request/response type-ahead loop. Each inbound frame is a query; the
// handler runs it through the engine and writes back the same Result
// envelope Search returns over plain HTTP.
type WSHandler struct {
	hub *Hub
	eng *engine.Engine
}

// NewWSHandler creates a WSHandler.
func NewWSHandler(hub *Hub, eng *engine.Engine) *WSHandler {
	return &WSHandler{hub: hub, eng: eng}
}

// ServeWS upgrades the connection and starts its read/write pumps.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &WSConn{conn: conn, send: make(chan []byte, sendBufSize)}
	h.hub.Register(client)
	log.Info().Int("total", h.hub.ConnectionCount()).Msg("search websocket client connected")

	go h.writePump(client)
	h.readPump(client)
}

func (h *WSHandler) readPump(c *WSConn) {
	defer func() {
		h.hub.Unregister(c)
		close(c.send)
		c.conn.Close()
		log.Info().Msg("search websocket client disconnected")
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("search websocket unexpected close")
			}
			return
		}

		var q searchQuery
		if err := json.Unmarshal(message, &q); err != nil {
			continue
		}
		if q.Limit <= 0 {
			q.Limit = engine.DefaultResultLimit
		}

		result := h.eng.Search(q.Q, q.Limit)
		payload, err := json.Marshal(result)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal search result")
			continue
		}

		select {
		case c.send <- payload:
		default:
			log.Warn().Msg("dropping search websocket frame, buffer full")
		}
	}
}

func (h *WSHandler) writePump(c *WSConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
