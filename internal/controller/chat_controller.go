package controller

import (
	"ai-musicchat-be/internal/dto"
	"ai-musicchat-be/internal/pkg/serverutils"
	"ai-musicchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	GetInfo(ctx *fiber.Ctx) error
	GetTurn(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	UpdateChat(ctx *fiber.Ctx) error
	GeneralChat(ctx *fiber.Ctx) error
	AnalyzePreference(ctx *fiber.Ctx) error
	ExtractTraits(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

// RegisterRoutes mounts the chat surface at the root. The paths are the
// wire contract consumed by existing clients, so no version prefix.
func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("/chat_info/:chat_id", c.GetInfo)
	r.Get("/chat_details/:message_id", c.GetTurn)
	r.Get("/chat_history", c.GetHistory)
	r.Post("/update_chat", c.UpdateChat)
	r.Post("/general_chat", c.GeneralChat)
	r.Post("/analyze_preference", c.AnalyzePreference)
	r.Post("/extract_traits", c.ExtractTraits)
}

func (c *chatController) GetInfo(ctx *fiber.Ctx) error {
	chatId, err := uuid.Parse(ctx.Params("chat_id"))
	if err != nil {
		return serverutils.NewBadRequestError("invalid chat_id format", err)
	}

	res, err := c.service.GetInfo(ctx.Context(), chatId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat info", res))
}

func (c *chatController) GetTurn(ctx *fiber.Ctx) error {
	messageId, err := uuid.Parse(ctx.Params("message_id"))
	if err != nil {
		return serverutils.NewBadRequestError("invalid message_id format", err)
	}

	res, err := c.service.GetTurn(ctx.Context(), messageId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat details", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	filter := dto.HistoryFilter{
		UserId:    ctx.Query("user_id"),
		ChatId:    ctx.Query("chat_id"),
		Role:      ctx.Query("role"),
		AgentName: ctx.Query("agent_name"),
	}
	if filter.UserId == "" {
		return serverutils.NewBadRequestError("user_id is required", nil)
	}

	res, err := c.service.GetHistory(ctx.Context(), &filter)
	if err != nil {
		return err
	}
	if len(res) == 0 {
		return serverutils.NewNotFoundError("no chat history found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat history", res))
}

func (c *chatController) UpdateChat(ctx *fiber.Ctx) error {
	var req dto.UpdateChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RecordTurn(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Turn recorded", res))
}

func (c *chatController) GeneralChat(ctx *fiber.Ctx) error {
	req := dto.GeneralChatRequest{
		UserId:    ctx.Query("user_id"),
		ChatId:    ctx.Query("chat_id"),
		AgentName: ctx.Query("agent_name"),
		Query:     ctx.Query("query"),
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GeneralChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat response", res))
}

func (c *chatController) AnalyzePreference(ctx *fiber.Ctx) error {
	req := dto.AnalyzePreferenceRequest{
		UserId:    ctx.Query("user_id"),
		ChatId:    ctx.Query("chat_id"),
		AgentName: ctx.Query("agent_name"),
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AnalyzePreference(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Preference analysis", res))
}

func (c *chatController) ExtractTraits(ctx *fiber.Ctx) error {
	var req dto.ExtractTraitsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequestError("invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ExtractTraits(ctx.Context(), req.Query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Extracted traits", res))
}
