package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager keeps track of active user websocket connections.
type Manager struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn // userID -> conn
}

func NewManager() *Manager {
	return &Manager{conns: make(map[string]*websocket.Conn)}
}

// Register registers a user connection, replacing any existing one.
func (m *Manager) Register(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.conns[userID]; ok && old != conn {
		// a stale socket hangs around until the peer times out
		_ = old.Close()
	}
	m.conns[userID] = conn
}

// Unregister removes a user connection. Only the given connection is
// removed, so a replaced socket cannot evict its successor.
func (m *Manager) Unregister(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if current, ok := m.conns[userID]; ok && (conn == nil || current == conn) {
		_ = current.Close()
		delete(m.conns, userID)
	}
}

// SendToUser sends a text message to a user if connected. The manager lock
// also serializes writes on the shared connection.
func (m *Manager) SendToUser(userID string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.conns[userID]
	if !ok || conn == nil {
		return errors.New("user not connected")
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// IsConnected returns whether a user currently has a live connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.conns[userID]
	return ok
}

// List returns the connected user IDs.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.conns))
	for id := range m.conns {
		ids = append(ids, id)
	}
	return ids
}
