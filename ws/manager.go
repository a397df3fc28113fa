package ws

import (
	"sync"

	"gigmarket_backend/internal/logger"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Manager is the session registry: userID -> set of active connections.
// A user may hold several sessions (tabs, devices); a push goes to all of
// them. Connect/disconnect run through the register channels so the map has
// a single writer.
type Manager struct {
	sessions   map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions:   make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.sessions[client.UserID] == nil {
				m.sessions[client.UserID] = make(map[*Client]struct{})
			}
			m.sessions[client.UserID][client] = struct{}{}
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID)

		case client := <-m.unregister:
			m.mu.Lock()
			if set, ok := m.sessions[client.UserID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.Send)
					if len(set) == 0 {
						delete(m.sessions, client.UserID)
					}
				}
			}
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID)
		}
	}
}

// SendToUser delivers the event to every active session of the user.
// Returns false when the user has no sessions or every session's buffer was
// full; the caller treats either as "not delivered" and moves on, since the
// durable notification row is the source of truth, not this push.
func (m *Manager) SendToUser(userID string, event Event) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set, ok := m.sessions[userID]
	if !ok || len(set) == 0 {
		return false
	}

	delivered := false
	for client := range set {
		select {
		case client.Send <- event:
			delivered = true
		default:
			// Slow consumer; drop the event for this session rather than
			// block the sender.
		}
	}
	return delivered
}

func (m *Manager) IsUserConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[userID]
	return ok
}

func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := 0
	for _, set := range m.sessions {
		total += len(set)
	}
	return total
}
