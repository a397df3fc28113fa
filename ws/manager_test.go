package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(m *Manager, userID string) *Client {
	return &Client{
		UserID:  userID,
		Send:    make(chan Event, sendBufferSize),
		Manager: m,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within a second")
}

func TestManager_RegisterUnregister(t *testing.T) {
	m := NewManager()
	go m.Run()

	client := newTestClient(m, "user-1")
	m.register <- client
	waitFor(t, func() bool { return m.IsUserConnected("user-1") })
	assert.Equal(t, 1, m.SessionCount())

	m.unregister <- client
	waitFor(t, func() bool { return !m.IsUserConnected("user-1") })
	assert.Equal(t, 0, m.SessionCount())

	// Send channel закрыт после unregister
	_, open := <-client.Send
	assert.False(t, open)
}

func TestManager_SendToUser(t *testing.T) {
	m := NewManager()
	go m.Run()

	client := newTestClient(m, "user-1")
	m.register <- client
	waitFor(t, func() bool { return m.IsUserConnected("user-1") })

	delivered := m.SendToUser("user-1", Event{Event: "hired", Payload: map[string]string{"gigId": "g1"}})
	assert.True(t, delivered)

	ev := <-client.Send
	assert.Equal(t, "hired", ev.Event)
}

func TestManager_SendToUser_Offline(t *testing.T) {
	m := NewManager()
	go m.Run()

	delivered := m.SendToUser("nobody", Event{Event: "hired"})
	assert.False(t, delivered)
}

func TestManager_MultipleSessionsPerUser(t *testing.T) {
	m := NewManager()
	go m.Run()

	first := newTestClient(m, "user-1")
	second := newTestClient(m, "user-1")
	m.register <- first
	m.register <- second
	waitFor(t, func() bool { return m.SessionCount() == 2 })

	// Обе сессии получают событие
	m.SendToUser("user-1", Event{Event: "newBid"})
	assert.Equal(t, "newBid", (<-first.Send).Event)
	assert.Equal(t, "newBid", (<-second.Send).Event)

	// Закрытие одной сессии не трогает другую
	m.unregister <- first
	waitFor(t, func() bool { return m.SessionCount() == 1 })
	assert.True(t, m.IsUserConnected("user-1"))
}

func TestManager_SendSkipsFullBuffer(t *testing.T) {
	m := NewManager()
	go m.Run()

	client := newTestClient(m, "user-1")
	client.Send = make(chan Event) // unbuffered, никто не читает
	m.register <- client
	waitFor(t, func() bool { return m.IsUserConnected("user-1") })

	// Неотзывчивая сессия не блокирует отправителя
	delivered := m.SendToUser("user-1", Event{Event: "hired"})
	assert.False(t, delivered)
}
