package controller

import (
	"matchchat-be/internal/dto"
	"matchchat-be/internal/pkg/serverutils"
	"matchchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ListConversations(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chats")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.ListConversations)
	h.Get("/:roomId/messages", c.ListMessages)
	h.Post("/:roomId/messages", c.SendMessage)
	h.Post("/:roomId/read", c.MarkRead)
}

func (c *chatController) ListConversations(ctx *fiber.Ctx) error {
	res, err := c.service.ListConversations(ctx.Context(), callerEmail(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get conversations", res))
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	roomId := ctx.Params("roomId")

	// Incremental fetch: ?after_seq=N resumes past the last seen message,
	// ?limit=N pages the backlog. Both optional.
	afterSeq := int64(ctx.QueryInt("after_seq", 0))
	limit := ctx.QueryInt("limit", 0)

	res, err := c.service.ListMessages(ctx.Context(), callerEmail(ctx), roomId, afterSeq, limit)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	roomId := ctx.Params("roomId")

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), callerEmail(ctx), roomId, req.Text)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *chatController) MarkRead(ctx *fiber.Ctx) error {
	roomId := ctx.Params("roomId")

	if err := c.service.MarkRead(ctx.Context(), callerEmail(ctx), roomId); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Marked as read", nil))
}
