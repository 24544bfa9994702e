package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"schenkly.app/concierge/internal/http/dto"
	"schenkly.app/concierge/internal/service"
)

type SuggestionHandler struct {
	suggestionService service.SuggestionService
}

func NewSuggestionHandler(suggestionService service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

func (h *SuggestionHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := h.suggestionService.Generate(ctx, req.Occasion, req.Budget, req.Interests)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOccasionRequired),
			errors.Is(err, service.ErrBudgetRequired),
			errors.Is(err, service.ErrInterestsRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "failed to generate suggestions", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestions"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToGenerateResponse(suggestions))
}
