package handlers

import (
	"log"
	"sync"
	"time"

	"mouse-backend/models"

	"github.com/gofiber/websocket/v2"
)

// jsonConn - the part of *websocket.Conn the hub writes to
type jsonConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Client - one connected viewer
type Client struct {
	Conn    jsonConn
	RunID   string                   // only this run's messages; empty means every run
	Welcome *models.WebSocketMessage // sent by the hub before any broadcast
}

// ClientManager - viewer hub
type ClientManager struct {
	clients    map[jsonConn]*Client
	broadcast  chan models.WebSocketMessage
	register   chan *Client
	unregister chan jsonConn
	quit       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
}

// Manager - global viewer hub
var Manager = NewClientManager()

// NewClientManager - hub with a buffered broadcast queue
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients:    make(map[jsonConn]*Client),
		broadcast:  make(chan models.WebSocketMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan jsonConn),
		quit:       make(chan struct{}),
	}
}

// Start - serves register/unregister/broadcast until Stop
func (manager *ClientManager) Start() {
	for {
		select {
		case client := <-manager.register:
			// every write to a conn happens on this goroutine
			if client.Welcome != nil {
				if err := client.Conn.WriteJSON(*client.Welcome); err != nil {
					log.Printf("⚠️ welcome to viewer failed: %v", err)
					_ = client.Conn.Close()
					continue
				}
			}
			manager.mutex.Lock()
			manager.clients[client.Conn] = client
			manager.mutex.Unlock()
			log.Printf("👀 viewer connected (run: %q)", client.RunID)

		case conn := <-manager.unregister:
			manager.remove(conn)

		case message := <-manager.broadcast:
			manager.handleBroadcast(message)

		case <-manager.quit:
			return
		}
	}
}

// Register - hands a viewer to the hub; false once the hub has stopped
func (manager *ClientManager) Register(client *Client) bool {
	select {
	case manager.register <- client:
		return true
	case <-manager.quit:
		return false
	}
}

// Unregister - drops a viewer; a no-op once the hub has stopped
func (manager *ClientManager) Unregister(conn jsonConn) {
	select {
	case manager.unregister <- conn:
	case <-manager.quit:
	}
}

// Stop - ends Start
func (manager *ClientManager) Stop() {
	manager.stopOnce.Do(func() { close(manager.quit) })
}

func (manager *ClientManager) remove(conn jsonConn) {
	manager.mutex.Lock()
	defer manager.mutex.Unlock()

	if client, ok := manager.clients[conn]; ok {
		delete(manager.clients, conn)
		_ = conn.Close()
		log.Printf("👋 viewer disconnected (run: %q)", client.RunID)
	}
}

func (manager *ClientManager) handleBroadcast(message models.WebSocketMessage) {
	runID := runIDOf(message)

	var failed []jsonConn
	manager.mutex.RLock()
	for conn, client := range manager.clients {
		if client.RunID != "" && runID != "" && client.RunID != runID {
			continue
		}
		if err := conn.WriteJSON(message); err != nil {
			log.Printf("⚠️ send to viewer failed: %v", err)
			failed = append(failed, conn)
		}
	}
	manager.mutex.RUnlock()

	for _, conn := range failed {
		manager.remove(conn)
	}
}

// runIDOf - run a message belongs to; empty for server-wide messages
func runIDOf(message models.WebSocketMessage) string {
	switch data := message.Data.(type) {
	case models.WallData:
		return data.RunID
	case models.TextData:
		return data.RunID
	case models.PoseData:
		return data.RunID
	case models.GoalModeData:
		return data.RunID
	}
	return ""
}

// BroadcastMessage - queues msg for every viewer; dropped when the queue is full
func (manager *ClientManager) BroadcastMessage(msg models.WebSocketMessage) {
	select {
	case manager.broadcast <- msg:
	default:
		log.Printf("⚠️ broadcast queue full, dropping %s", msg.Type)
	}
}

// ClientCount - connected viewers
func (manager *ClientManager) ClientCount() int {
	manager.mutex.RLock()
	defer manager.mutex.RUnlock()
	return len(manager.clients)
}

// WebDisplay - a run's visualization side channel, streamed to viewers
type WebDisplay struct {
	RunID string
	Hub   *ClientManager
}

// SetWall - broadcasts a discovered wall
func (d *WebDisplay) SetWall(x, y int, direction byte) {
	d.Hub.BroadcastMessage(models.NewMessage(models.MessageTypeWall, models.WallData{
		RunID:     d.RunID,
		X:         x,
		Y:         y,
		Direction: string(direction),
	}))
}

// SetText - broadcasts a cell overlay
func (d *WebDisplay) SetText(x, y int, text string) {
	d.Hub.BroadcastMessage(models.NewMessage(models.MessageTypeText, models.TextData{
		RunID: d.RunID,
		X:     x,
		Y:     y,
		Text:  text,
	}))
}

// HandleWebClientWebSocket - viewer stream; ?run_id= narrows it to one run
func HandleWebClientWebSocket(c *websocket.Conn) {
	welcome := models.NewMessage(models.MessageTypeSystemInfo, models.SystemInfo{
		ConnectedClients: Manager.ClientCount() + 1,
		ActiveRuns:       Runs.Count(),
		ServerTime:       time.Now(),
	})
	client := &Client{
		Conn:    c,
		RunID:   c.Query("run_id"),
		Welcome: &welcome,
	}

	if !Manager.Register(client) {
		return
	}
	defer Manager.Unregister(c)

	// viewers only listen; reading detects the close
	for {
		var msg models.WebSocketMessage
		if err := c.ReadJSON(&msg); err != nil {
			log.Printf("viewer read: %v", err)
			break
		}
		log.Printf("ignoring viewer message: %s", msg.Type)
	}
}
