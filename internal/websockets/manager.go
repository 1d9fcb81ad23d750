package websockets

import (
	"sync"

	"guestlist/internal/logger"

	"github.com/gofiber/websocket/v2"
)

// Manager pushes import progress to connected dashboard clients. Clients are
// read-only; the read loop exists to detect disconnects.
type Manager struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	log     logger.Logger
}

func New() *Manager {
	return &Manager{
		clients: make(map[*websocket.Conn]bool),
		log:     logger.New("websockets"),
	}
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	m.register(c)
	defer m.unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Manager) register(c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c] = true
	m.log.Debug("websocket client connected", "clients", len(m.clients))
}

func (m *Manager) unregister(c *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.clients, c)
	_ = c.Close()
}

type message struct {
	Type     string         `json:"type"`
	ImportID string         `json:"importId"`
	Data     map[string]any `json:"data,omitempty"`
	Error    string         `json:"error,omitempty"`
}

func (m *Manager) SendImportProgress(importID string, data map[string]any) {
	m.broadcast(message{Type: "import_progress", ImportID: importID, Data: data})
}

func (m *Manager) SendImportComplete(importID string, result map[string]any) {
	m.broadcast(message{Type: "import_complete", ImportID: importID, Data: result})
}

func (m *Manager) SendImportError(importID string, errorMsg string) {
	m.broadcast(message{Type: "import_error", ImportID: importID, Error: errorMsg})
}

// broadcast takes the write lock: the underlying connections allow only one
// concurrent writer, and concurrent import runs broadcast from separate
// goroutines.
func (m *Manager) broadcast(msg message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for client := range m.clients {
		if err := client.WriteJSON(msg); err != nil {
			m.log.Warn("failed to write to websocket client", "error", err)
		}
	}
}
