package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notifier delivers fire-and-forget events to a user: a direct push over
// their websocket client plus a Redis publish on notifications:<userID>
// so other consumers can observe the same stream.
type Notifier struct {
	Hub *Hub
	RDB *redis.Client
}

func NewNotifier(hub *Hub, rdb *redis.Client) *Notifier {
	return &Notifier{Hub: hub, RDB: rdb}
}

func (n *Notifier) Push(userID uuid.UUID, event string, data interface{}) {
	n.Hub.SendToUser(userID, event, data)

	if n.RDB == nil {
		return
	}

	payload, err := json.Marshal(Event{Event: event, Data: data})
	if err != nil {
		log.Printf("Error marshaling notification for %s: %v", userID, err)
		return
	}
	if err := n.RDB.Publish(context.Background(), "notifications:"+userID.String(), payload).Err(); err != nil {
		log.Printf("Error publishing notification for %s: %v", userID, err)
	}
}
