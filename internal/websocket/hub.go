package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"matchchat-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub owns the registry of live connections. Clients are keyed by identity
// (email) for chat-list delivery and additionally join per-room subscriber
// sets for message-stream delivery. Redis pub/sub relays deliveries between
// instances.
//
// mu guards the registry AND every send on a client's Send channel. The
// channel is closed during teardown under the write lock, so a delivery
// racing a disconnect can never send on a closed channel.
type Hub struct {
	// identity -> connections (multi-device)
	clients map[string][]*Client

	// room id -> subscribed connections
	rooms map[string]map[*Client]bool

	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	// instanceId lets the relay subscriber skip payloads this instance
	// already delivered locally, keeping per-connection delivery exactly once.
	instanceId string

	logger logger.ILogger
}

type relayPayload struct {
	Origin     string          `json:"origin"`
	TargetUser string          `json:"target_user,omitempty"`
	TargetRoom string          `json:"target_room,omitempty"`
	Message    json.RawMessage `json:"message"`
}

const relayChannel = "chat_cluster_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		rooms:      make(map[string]map[*Client]bool),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for client := range h.unregister {
		h.mu.Lock()
		h.removeClientLocked(client)
		h.mu.Unlock()
	}
}

// Register adds the connection to the identity registry. Synchronous: once
// it returns, deliveries reach the connection.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client.Email] = append(h.clients[client.Email], client)
	h.mu.Unlock()
	h.logger.Info("Hub", "Client registered", map[string]interface{}{"email": client.Email})
}

// removeClientLocked drops the connection from the identity registry and from
// every room it subscribed to, so no further deliveries can reach it.
func (h *Hub) removeClientLocked(client *Client) {
	if clients, ok := h.clients[client.Email]; ok {
		for i, c := range clients {
			if c == client {
				h.clients[client.Email] = append(clients[:i], clients[i+1:]...)
				close(client.Send)
				break
			}
		}
		if len(h.clients[client.Email]) == 0 {
			delete(h.clients, client.Email)
			h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"email": client.Email})
		}
	}
	for roomId, members := range h.rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, roomId)
			}
		}
	}
}

// SubscribeRoom joins the connection to a room's subscriber set.
func (h *Hub) SubscribeRoom(client *Client, roomId string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[roomId] == nil {
		h.rooms[roomId] = make(map[*Client]bool)
	}
	h.rooms[roomId][client] = true
}

// UnsubscribeRoom removes the connection from a room's subscriber set.
func (h *Hub) UnsubscribeRoom(client *Client, roomId string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[roomId]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.rooms, roomId)
		}
	}
}

// RoomSubscribers returns the identities currently viewing a room.
func (h *Hub) RoomSubscribers(roomId string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	seen := make(map[string]bool)
	var emails []string
	for client := range h.rooms[roomId] {
		if !seen[client.Email] {
			seen[client.Email] = true
			emails = append(emails, client.Email)
		}
	}
	return emails
}

// SendToUser delivers data to every connection of one identity, locally and
// via the cross-instance relay.
func (h *Hub) SendToUser(email string, data []byte) {
	h.mu.RLock()
	for _, client := range h.clients[email] {
		h.deliverLocked(client, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		payload, _ := json.Marshal(relayPayload{Origin: h.instanceId, TargetUser: email, Message: data})
		h.rdb.Publish(context.Background(), relayChannel, payload)
	}
}

// SendToRoom delivers data to every connection subscribed to the room.
func (h *Hub) SendToRoom(roomId string, data []byte) {
	h.mu.RLock()
	for client := range h.rooms[roomId] {
		h.deliverLocked(client, data)
	}
	h.mu.RUnlock()

	if h.rdb != nil {
		payload, _ := json.Marshal(relayPayload{Origin: h.instanceId, TargetRoom: roomId, Message: data})
		h.rdb.Publish(context.Background(), relayChannel, payload)
	}
}

// deliverLocked pushes one frame; callers hold h.mu, which excludes the
// close in removeClientLocked. A full buffer drops the frame rather than
// tearing the connection down here: the read deadline reaps dead peers, and
// reaching back into unregister while locked would deadlock.
func (h *Hub) deliverLocked(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client send buffer full, dropping frame", map[string]interface{}{"email": client.Email})
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to the relay channel and delivers locally
	// if it holds the target user or room.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, relayChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload relayPayload
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.Origin == h.instanceId {
			continue
		}

		if payload.TargetRoom != "" {
			h.mu.RLock()
			for client := range h.rooms[payload.TargetRoom] {
				h.deliverLocked(client, payload.Message)
			}
			h.mu.RUnlock()
			continue
		}

		if payload.TargetUser != "" {
			h.mu.RLock()
			for _, client := range h.clients[payload.TargetUser] {
				h.deliverLocked(client, payload.Message)
			}
			h.mu.RUnlock()
		}
	}
}
