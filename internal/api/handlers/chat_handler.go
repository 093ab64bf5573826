package handlers

import (
	"strings"

	"abit-advisor/internal/dto"
	"abit-advisor/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// unavailableMessage is the only thing a user sees when the engine could
// not answer. Raw errors stay in the logs.
const unavailableMessage = "Извините, сейчас я не могу ответить на ваш вопрос. Попробуйте, пожалуйста, позже."

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Answer a free-text question about the programs
// @Description Retrieves relevant knowledge and generates a grounded answer
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "User query"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Query is required",
		})
	}

	answer, err := h.chatService.Answer(c.UserContext(), query)
	if err != nil {
		h.logger.Error("Failed to answer query", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": unavailableMessage,
		})
	}

	return c.JSON(dto.ChatResponse{Answer: answer})
}
