package ws

import (
	"context"

	applog "talent-match/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type envelope struct {
	candidateID uuid.UUID
	message     []byte
}

// Hub fans events out to the websocket clients of one candidate. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	send       chan envelope
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	done       chan struct{}
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		send:       make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		logger:     applog.OrNop(logger).Named("ws"),
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.clients {
				for c := range set {
					close(c.send)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]struct{})
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			set, ok := h.clients[client.candidateID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.candidateID] = set
			}
			set[client] = struct{}{}
			h.logger.Debug("ws connected", zap.String("candidate_id", client.candidateID.String()), zap.Int("candidate_clients", len(set)))

		case client := <-h.unregister:
			h.remove(client)

		case env := <-h.send:
			set := h.clients[env.candidateID]
			for client := range set {
				select {
				case client.send <- env.message:
				default:
					h.remove(client)
				}
			}

		case reply := <-h.count:
			n := 0
			for _, set := range h.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	set, ok := h.clients[client.candidateID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.candidateID)
	}
	h.logger.Debug("ws disconnected", zap.String("candidate_id", client.candidateID.String()))
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// SendTo queues message for every connection of candidateID. It never blocks.
func (h *Hub) SendTo(candidateID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.send <- envelope{candidateID: candidateID, message: message}:
	default:
		h.logger.Warn("ws send dropped", zap.String("candidate_id", candidateID.String()), zap.String("reason", "buffer_full"))
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}
