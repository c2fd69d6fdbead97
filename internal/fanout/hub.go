// Package fanout implements C8, the external-collaborator websocket relay
// that tees every published domain event (and the dead-letter topic) to
// connected browser clients, grounded on
// _examples/tomtom215-cartographus/internal/websocket/hub.go.
package fanout

import (
	"context"
	"sort"
	"sync"

	"github.com/architeacher/svc-web-analyzer/internal/infrastructure"
)

// Message is the envelope relayed to every connected client.
type Message struct {
	Topic   string `json:"topic"`
	Payload any    `json:"payload"`
}

// Hub maintains the set of connected clients and relays broadcast messages
// to each of them, in deterministic client order.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
	logger     infrastructure.Logger
}

func NewHub(logger infrastructure.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		logger:     logger,
	}
}

// Broadcast queues msg for relay to every connected client. Never blocks:
// when the hub's broadcast buffer is full the message is dropped for all
// clients.
func (h *Hub) Broadcast(msg Message) {
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn().Str("topic", msg.Topic).Msg("fanout broadcast channel full, dropping message")
	}
}

// Start blocks, relaying registrations, unregistrations, and broadcasts until
// ctx is cancelled, at which point it closes every connected client.
//
// Priority-ordered select: client lifecycle events are drained before
// broadcasts are considered, so a client's membership is always settled
// before it could be handed (or miss) a message. Satisfies
// ports.BackgroundProcessor so the hub runs alongside the subscriber as a
// ServiceCtx worker.
func (h *Hub) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
			continue
		case client := <-h.Unregister:
			h.removeClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.closeAllClients()
			return ctx.Err()
		case client := <-h.Register:
			h.addClient(client)
		case client := <-h.Unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.relay(msg)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Info().Int("clients", count).Msg("fanout client connected")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	count := len(h.clients)
	h.mu.Unlock()
	h.logger.Info().Int("clients", count).Msg("fanout client disconnected")
}

func (h *Hub) relay(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })

	var stale []*Client
	for _, client := range clients {
		select {
		case client.send <- msg:
		default:
			stale = append(stale, client)
		}
	}

	for _, client := range stale {
		close(client.send)
		delete(h.clients, client)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.logger.Info().Msg("fanout hub stopped, closed all clients")
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
