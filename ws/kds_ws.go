package ws

import (
	"log"
	"net/http"
	"sync"

	"backend/pkg/apperr"
	"backend/pkg/resp"
	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// KDSHub กระจาย lane update ให้จอครัวของแต่ละ tenant แบบ realtime
type KDSHub struct {
	clients    map[uint]map[*websocket.Conn]bool // tenantID -> set of clients
	broadcast  chan tenantUpdate
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex
}

// Subscription = จอครัวหนึ่งจอ (1 connection ต่อ 1 subscription)
type Subscription struct {
	Conn     *websocket.Conn
	TenantID uint
}

type tenantUpdate struct {
	TenantID uint
	Update   services.LaneUpdate
}

func NewKDSHub() *KDSHub {
	return &KDSHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan tenantUpdate),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
	}
}

// คอยฟัง register/unregister/broadcast ตลอดเวลา
func (h *KDSHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.TenantID] == nil {
				h.clients[sub.TenantID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.TenantID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.TenantID][sub.Conn]; ok {
				delete(h.clients[sub.TenantID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[msg.TenantID] {
				if err := conn.WriteJSON(msg.Update); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[msg.TenantID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastLaneChange implement services.LaneNotifier
func (h *KDSHub) BroadcastLaneChange(tenantID uint, u services.LaneUpdate) {
	h.broadcast <- tenantUpdate{TenantID: tenantID, Update: u}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // dev เท่านั้น
}

// GET /ws/kds (ผ่าน AuthMiddleware แล้ว เลยมี tenantId ใน ctx)
func (h *KDSHub) Serve(c *gin.Context) {
	tenantID := utils.CurrentTenantID(c)
	if tenantID == 0 {
		resp.FromError(c, apperr.TenantContextMissing())
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}

	sub := Subscription{Conn: conn, TenantID: tenantID}
	h.register <- sub

	// อ่านทิ้งไปเรื่อย ๆ เพื่อจับตอน client หลุด
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
