package handlers

import (
	"abit-advisor/internal/dto"
	"abit-advisor/internal/models"
	"abit-advisor/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

func profileFromRequest(req dto.ProfileRequest) *models.UserProfile {
	return &models.UserProfile{
		TechnicalSkills:       req.TechnicalSkills,
		ManagementInterest:    req.ManagementInterest,
		ProgrammingExperience: req.ProgrammingExperience,
		MLKnowledge:           req.MLKnowledge,
		ProductExperience:     req.ProductExperience,
	}
}

// Recommend godoc
// @Summary Recommend a program for an intake profile
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.ProfileRequest true "Five intake answers"
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/recommend [post]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	var req dto.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	outcome, text := h.recService.Score(profileFromRequest(req))

	return c.JSON(dto.RecommendationResponse{
		Outcome:        string(outcome),
		Recommendation: text,
	})
}

// Electives godoc
// @Summary Suggest elective courses for a chosen program
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.ElectivesRequest true "Chosen program and intake profile"
// @Success 200 {object} dto.ElectivesResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/recommend/electives [post]
func (h *RecommendationHandler) Electives(c *fiber.Ctx) error {
	var req dto.ElectivesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	program := models.Program(req.Program)
	if !program.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Program must be 'ai' or 'ai_product'",
		})
	}

	suggestions := h.recService.ElectiveSuggestions(program, profileFromRequest(req.Profile))

	return c.JSON(dto.ElectivesResponse{Suggestions: suggestions})
}
