package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/loddgo/loddgo-api/internal/api/handler/v1/response"
	"github.com/loddgo/loddgo-api/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveMessage is what viewers of an event receive when a draw is recorded.
type LiveMessage struct {
	Type      string      `json:"type"`
	EventCode string      `json:"event_code"`
	Draw      domain.Draw `json:"draw"`
}

type liveBroadcast struct {
	eventCode string
	payload   []byte
}

type LiveClient struct {
	conn      *websocket.Conn
	send      chan []byte
	eventCode string
}

// LiveHub fans recorded draws out to websocket viewers grouped by event code.
type LiveHub struct {
	events       EventService
	clients      map[string]map[*LiveClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan liveBroadcast
	register     chan *LiveClient
	unregister   chan *LiveClient
	done         chan struct{}
}

func NewLiveHub(events EventService) *LiveHub {
	return &LiveHub{
		events:     events,
		clients:    make(map[string]map[*LiveClient]struct{}),
		broadcast:  make(chan liveBroadcast, 64),
		register:   make(chan *LiveClient),
		unregister: make(chan *LiveClient),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *LiveHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.clientsMutex.Lock()
			for code, clients := range h.clients {
				for client := range clients {
					close(client.send)
				}
				delete(h.clients, code)
			}
			h.clientsMutex.Unlock()
			return
		case client := <-h.register:
			h.clientsMutex.Lock()
			if h.clients[client.eventCode] == nil {
				h.clients[client.eventCode] = make(map[*LiveClient]struct{})
			}
			h.clients[client.eventCode][client] = struct{}{}
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			h.remove(client)
			h.clientsMutex.Unlock()
		case msg := <-h.broadcast:
			h.clientsMutex.Lock()
			for client := range h.clients[msg.eventCode] {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// remove must be called with clientsMutex held.
func (h *LiveHub) remove(client *LiveClient) {
	clients, ok := h.clients[client.eventCode]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.eventCode)
	}
}

// Publish queues draw for every viewer of eventCode. It never blocks; when
// the queue is full the message is dropped.
func (h *LiveHub) Publish(eventCode string, draw domain.Draw) {
	payload, err := json.Marshal(LiveMessage{
		Type:      "draw",
		EventCode: eventCode,
		Draw:      draw,
	})
	if err != nil {
		zap.L().Error("failed to encode live draw", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- liveBroadcast{eventCode: eventCode, payload: payload}:
	default:
		zap.L().Warn("live broadcast queue full, dropping draw", zap.String("event_code", eventCode))
	}
}

// Viewers returns how many clients are watching eventCode.
func (h *LiveHub) Viewers(eventCode string) int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	return len(h.clients[eventCode])
}

// HandleLive godoc
// @Summary      Watch draws live
// @Description  Upgrades to a websocket that receives every draw recorded for the event.
// @Tags         events
// @Param        code  path      string  true  "Event code"
// @Success      101   {string}  string  "Switching Protocols"
// @Failure      404   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /events/{code}/live [get]
func (h *LiveHub) HandleLive(ctx *gin.Context) {
	code := ctx.Param("code")
	if _, err := h.events.GetByCode(ctx.Request.Context(), code); err != nil {
		response.RenderErr(ctx, serviceErr("HandleLive -> h.events.GetByCode", err))
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &LiveClient{
		conn:      conn,
		send:      make(chan []byte, 16),
		eventCode: code,
	}
	select {
	case h.register <- client:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *LiveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only drains control frames; viewers never send anything useful.
func (c *LiveClient) readPump(h *LiveHub) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("live client closed", zap.Error(err))
			}
			return
		}
	}
}
