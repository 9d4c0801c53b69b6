package handler

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"matchchat-be/internal/dto"
	"matchchat-be/internal/pkg/logger"
	"matchchat-be/internal/service"
	internalWS "matchchat-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ChatStreamHandler upgrades authenticated connections and speaks the live
// chat protocol: a chat_list snapshot on connect, then subscribe/unsubscribe/
// mark_read actions from the peer. Room subscriptions live exactly as long as
// the connection.
type ChatStreamHandler struct {
	hub         *internalWS.Hub
	chatService service.IChatService
	logger      logger.ILogger

	mu    sync.Mutex
	rooms map[*internalWS.Client]map[string]bool
}

func NewChatStreamHandler(hub *internalWS.Hub, chatService service.IChatService, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		hub:         hub,
		chatService: chatService,
		logger:      log,
		rooms:       make(map[*internalWS.Client]map[string]bool),
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers can't set headers on WS handshakes, so the token may arrive
	// as a query param instead.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("ChatStream", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing email"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatStream", "Starting WebSocket session", map[string]interface{}{"email": email})
			internalWS.ServeWs(h.hub, conn, email, h)
			h.logger.Info("ChatStream", "WebSocket session ended", map[string]interface{}{"email": email})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// HandleInbound dispatches one frame from the peer.
func (h *ChatStreamHandler) HandleInbound(client *internalWS.Client, data []byte) {
	var action dto.StreamAction
	if err := json.Unmarshal(data, &action); err != nil {
		h.logger.Warn("ChatStream", "Unparseable inbound frame", map[string]interface{}{"email": client.Email, "error": err.Error()})
		return
	}

	ctx := context.Background()

	switch action.Action {
	case "subscribe":
		h.subscribe(ctx, client, action.RoomId)
	case "unsubscribe":
		h.unsubscribe(ctx, client, action.RoomId)
	case "mark_read":
		if err := h.chatService.MarkRead(ctx, client.Email, action.RoomId); err != nil {
			h.logger.Warn("ChatStream", "mark_read failed", map[string]interface{}{"email": client.Email, "room_id": action.RoomId, "error": err.Error()})
		}
	default:
		h.logger.Warn("ChatStream", "Unknown action", map[string]interface{}{"action": action.Action})
	}
}

// HandleClose releases every room the connection held. Hub teardown already
// dropped it from the subscriber sets; this clears the handler's view and
// marks the last viewed rooms read.
func (h *ChatStreamHandler) HandleClose(client *internalWS.Client) {
	h.mu.Lock()
	held := h.rooms[client]
	delete(h.rooms, client)
	h.mu.Unlock()

	for roomId := range held {
		if err := h.chatService.MarkRead(context.Background(), client.Email, roomId); err != nil {
			h.logger.Warn("ChatStream", "mark_read on close failed", map[string]interface{}{"email": client.Email, "room_id": roomId, "error": err.Error()})
		}
	}
}

// HandleOpen pushes the initial chat list snapshot so a (re)connecting
// client starts from known state.
func (h *ChatStreamHandler) HandleOpen(client *internalWS.Client) {
	summaries, err := h.chatService.ListConversations(context.Background(), client.Email)
	if err != nil {
		h.logger.Warn("ChatStream", "Initial chat list failed", map[string]interface{}{"email": client.Email, "error": err.Error()})
		return
	}
	payload, err := json.Marshal(dto.StreamFrame{Type: dto.FrameChatList, Data: summaries})
	if err != nil {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

// subscribe delivers the room backlog in append order, then joins the live
// fan-out. Entering a room counts as reading it.
func (h *ChatStreamHandler) subscribe(ctx context.Context, client *internalWS.Client, roomId string) {
	if roomId == "" {
		return
	}

	backlog, err := h.chatService.ListMessages(ctx, client.Email, roomId, 0, 0)
	if err != nil {
		h.logger.Warn("ChatStream", "Backlog fetch failed", map[string]interface{}{"email": client.Email, "room_id": roomId, "error": err.Error()})
		return
	}

	for _, msg := range backlog {
		payload, err := json.Marshal(dto.StreamFrame{Type: dto.FrameMessage, RoomId: roomId, Data: msg})
		if err != nil {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			return
		}
	}

	h.hub.SubscribeRoom(client, roomId)

	h.mu.Lock()
	if h.rooms[client] == nil {
		h.rooms[client] = make(map[string]bool)
	}
	h.rooms[client][roomId] = true
	h.mu.Unlock()

	if err := h.chatService.MarkRead(ctx, client.Email, roomId); err != nil {
		h.logger.Warn("ChatStream", "mark_read on subscribe failed", map[string]interface{}{"email": client.Email, "room_id": roomId, "error": err.Error()})
	}
}

// unsubscribe leaves the room; exiting also counts as reading it.
func (h *ChatStreamHandler) unsubscribe(ctx context.Context, client *internalWS.Client, roomId string) {
	h.hub.UnsubscribeRoom(client, roomId)

	h.mu.Lock()
	if held := h.rooms[client]; held != nil {
		delete(held, roomId)
	}
	h.mu.Unlock()

	if err := h.chatService.MarkRead(ctx, client.Email, roomId); err != nil {
		h.logger.Warn("ChatStream", "mark_read on unsubscribe failed", map[string]interface{}{"email": client.Email, "room_id": roomId, "error": err.Error()})
	}
}

// RegisterRoutes mounts the websocket upgrade endpoint.
func (h *ChatStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/chats/ws", h.ServeWs)
}
