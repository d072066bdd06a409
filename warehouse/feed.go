package warehouse

import (
	"log"
	"net/http"
	"sync"

	"moyo/middleware"
	"moyo/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Hub fans order-status events out to connected warehouse clients.
type Hub struct {
	clients    map[*FeedClient]bool
	register   chan *FeedClient
	unregister chan *FeedClient
	broadcast  chan []byte
	done       chan struct{}
	mu         sync.Mutex
}

type FeedClient struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*FeedClient]bool),
		register:   make(chan *FeedClient),
		unregister: make(chan *FeedClient),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if h.clients[c] {
				delete(h.clients, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					log.Printf("warehouse feed: dropping slow client %s", c.ID)
					close(c.Send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.Send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// add hands a client to the hub loop. Returns false when the hub has shut
// down, so connection goroutines never block on a dead loop.
func (h *Hub) add(c *FeedClient) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) drop(c *FeedClient) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues a payload for every connected feed client.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		log.Println("warehouse feed: broadcast queue full, dropping event")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeFeed upgrades a warehouse client to the live status feed. The token
// rides the query string because websocket clients cannot set headers.
func (h *Hub) ServeFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := r.URL.Query().Get("token")
	claims, err := middleware.ValidateJWT("Bearer " + token)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if !hasWarehouseRole(claims.Role) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("warehouse feed upgrade error:", err)
		return
	}

	client := &FeedClient{ID: utils.GetUUID(), Conn: conn, Send: make(chan []byte, 16)}
	if !h.add(client) {
		conn.Close()
		return
	}

	go func() {
		defer func() {
			h.drop(client)
			conn.Close()
		}()
		for msg := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	// Drain reads so the connection notices close frames.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(client)
				return
			}
		}
	}()
}

func hasWarehouseRole(roles []string) bool {
	for _, role := range roles {
		if role == "warehouse-manager" {
			return true
		}
	}
	return false
}
