package controller

import (
	"matchchat-be/internal/dto"
	"matchchat-be/internal/pkg/serverutils"
	"matchchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMatchController interface {
	RegisterRoutes(r fiber.Router)
	Recommendations(ctx *fiber.Ctx) error
	CreateRoom(ctx *fiber.Ctx) error
}

type matchController struct {
	service service.IMatchService
}

func NewMatchController(service service.IMatchService) IMatchController {
	return &matchController{service: service}
}

func (c *matchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/match")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/recommendations", c.Recommendations)
	h.Post("/rooms", c.CreateRoom)
}

func (c *matchController) Recommendations(ctx *fiber.Ctx) error {
	res, err := c.service.Recommendations(ctx.Context(), callerEmail(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}

func (c *matchController) CreateRoom(ctx *fiber.Ctx) error {
	var req dto.CreateRoomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateRoom(ctx.Context(), callerEmail(ctx), req.TargetEmail)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Room created", res))
}
