package websocket

import (
	"encoding/json"
	"testing"
	"time"
)

// даём петле Run обработать broadcast; паника уронила бы тестовый процесс
func settle() {
	time.Sleep(50 * time.Millisecond)
}

func TestHub_BroadcastWithoutClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Ни один клиент ещё не подключался: события должны отбрасываться молча
	h.Broadcast("assessment", map[string]string{"stage": "diseases_ready"})
	settle()

	h.Broadcast("assessment", map[string]string{"stage": "complete"})
	settle()
}

func TestHub_BroadcastToStalledClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Клиент без читателя и без буфера: первый broadcast закрывает его канал
	h.register <- &Client{hub: h, isActive: true, send: make(chan []byte)}

	h.Broadcast("assessment", "first")
	settle()

	// Канал уже закрыт и сброшен - повторный broadcast не должен паниковать
	h.Broadcast("assessment", "second")
	settle()

	h.Broadcast("assessment", "third")
	settle()
}

func TestHub_BroadcastDeliversToClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{hub: h, isActive: true, send: make(chan []byte, 4)}
	h.register <- client

	h.Broadcast("assessment", map[string]string{"stage": "complete"})

	select {
	case raw := <-client.send:
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if msg.Type != "assessment" {
			t.Errorf("Expected message type 'assessment', got '%s'", msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected broadcast to reach the connected client")
	}
}
