package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/middleware"
	"github.com/youssefibrahim146/Volt/usecases"
)

type AIHandler struct {
	useCase *usecases.AIUseCase
}

func NewAIHandler(useCase *usecases.AIUseCase) *AIHandler {
	return &AIHandler{
		useCase: useCase,
	}
}

// Recommendations handles GET /api/v1/ai/recommendations
//
// Model failures never surface here: the use case falls back to the
// plain affordability filter, so an authenticated request succeeds.
func (h *AIHandler) Recommendations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	payload, err := h.useCase.SmartRecommendations(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Recommendations generated successfully", payload)
}

// Tips handles GET /api/v1/ai/tips/:deviceId
func (h *AIHandler) Tips(c *gin.Context) {
	user := middleware.CurrentUser(c)

	tips, err := h.useCase.DeviceTips(c.Request.Context(), user.ID, c.Param("deviceId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Tips generated successfully", gin.H{
		"tips": tips,
	})
}
