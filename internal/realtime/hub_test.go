package realtime

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte, 16),
	}
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	client := newTestClient(userID)
	hub.RegisterClient(client)

	hub.SendToUser(userID, "hiredNotification", map[string]string{
		"message": "You have been hired!",
		"gigId":   "g1",
	})

	require.Len(t, client.Send, 1)
	var ev struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(<-client.Send, &ev))
	assert.Equal(t, "hiredNotification", ev.Event)
	assert.Equal(t, "You have been hired!", ev.Data["message"])
	assert.Equal(t, "g1", ev.Data["gigId"])
}

func TestHub_SendToUser_OfflineIsNoop(t *testing.T) {
	hub := NewHub()

	// must not panic, must not queue anything anywhere
	hub.SendToUser(uuid.New(), "hiredNotification", map[string]string{"gigId": "g1"})

	assert.False(t, hub.IsOnline(uuid.New()))
}

func TestHub_RegisterReplacesPrevious(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	c1 := newTestClient(userID)
	c2 := newTestClient(userID)

	hub.RegisterClient(c1)
	hub.RegisterClient(c2)

	// old channel is closed on replacement
	_, open := <-c1.Send
	assert.False(t, open)

	hub.SendToUser(userID, "ping", nil)
	assert.Len(t, c2.Send, 1)
}

func TestHub_UnregisterStaleClientKeepsNewer(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()

	c1 := newTestClient(userID)
	c2 := newTestClient(userID)

	hub.RegisterClient(c1)
	hub.RegisterClient(c2)

	// disconnect of the replaced connection arrives late
	hub.UnregisterClient(c1)

	assert.True(t, hub.IsOnline(userID))
	hub.SendToUser(userID, "ping", nil)
	assert.Len(t, c2.Send, 1)
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	client := newTestClient(userID)

	hub.RegisterClient(client)
	require.True(t, hub.IsOnline(userID))

	hub.UnregisterClient(client)
	assert.False(t, hub.IsOnline(userID))

	_, open := <-client.Send
	assert.False(t, open)

	// delivery after disconnect is dropped silently
	hub.SendToUser(userID, "ping", nil)
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	client := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Send:   make(chan []byte, 1),
	}
	hub.RegisterClient(client)

	hub.SendToUser(userID, "first", nil)
	// buffer is full now; this one is dropped instead of blocking
	hub.SendToUser(userID, "second", nil)

	require.Len(t, client.Send, 1)
	var ev Event
	require.NoError(t, json.Unmarshal(<-client.Send, &ev))
	assert.Equal(t, "first", ev.Event)
}
