package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/complaints-dashboard/internal/goroutine"
)

// Frame сообщение клиенту: "type" имя события, "data" полезная нагрузка.
type Frame struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Envelope кадр с адресатом. Нулевой ProfileID означает всех администраторов.
// В таком виде события ходят и через Redis между экземплярами.
type Envelope struct {
	ProfileID uuid.UUID       `json:"profile_id"`
	Frame     json.RawMessage `json:"frame"`
}

// Hub держит подключения администраторов. Регистрацией, отключением и
// рассылкой владеет одна горутина Run.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	deliver    chan Envelope
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan Envelope, 64),
		done:       make(chan struct{}),
	}
}

// Run главный цикл. Возвращается после отмены ctx и закрывает все подключения.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case env := <-h.deliver:
			h.send(env)
		}
	}
}

// Done закрывается, когда Run завершился.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Deliver ставит готовый кадр в очередь рассылки этого экземпляра.
func (h *Hub) Deliver(env Envelope) {
	select {
	case h.deliver <- env:
	case <-h.done:
	}
}

// SendTo отправляет событие всем подключениям одного администратора.
func (h *Hub) SendTo(profileID uuid.UUID, event string, data any) error {
	env, err := NewEnvelope(profileID, event, data)
	if err != nil {
		return err
	}
	h.Deliver(env)
	return nil
}

// BroadcastAll отправляет событие всем подключённым администраторам.
func (h *Hub) BroadcastAll(event string, data any) error {
	return h.SendTo(uuid.Nil, event, data)
}

// ClientCount число живых подключений.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func NewEnvelope(profileID uuid.UUID, event string, data any) (Envelope, error) {
	raw, err := json.Marshal(Frame{Type: event, Data: data})
	if err != nil {
		return Envelope{}, fmt.Errorf("ws: не удалось сериализовать сообщение: %w", err)
	}
	return Envelope{ProfileID: profileID, Frame: raw}, nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.profileID]; !ok {
		h.clients[client.profileID] = make(map[*Client]struct{})
	}
	h.clients[client.profileID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.profileID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)
		}
		if len(clients) == 0 {
			delete(h.clients, client.profileID)
		}
	}
}

func (h *Hub) send(env Envelope) {
	h.mu.RLock()
	var targets []*Client
	if env.ProfileID == uuid.Nil {
		for _, set := range h.clients {
			for c := range set {
				targets = append(targets, c)
			}
		}
	} else {
		for c := range h.clients[env.ProfileID] {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- []byte(env.Frame):
		default:
			// Медленный клиент отключается, его буфер переполнен.
			h.removeClient(client)
			c := client
			goroutine.SafeGo(func() { c.closeConn() })
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for profileID, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, profileID)
	}
}
