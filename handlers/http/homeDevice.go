package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/handlers"
	"github.com/youssefibrahim146/Volt/middleware"
	"github.com/youssefibrahim146/Volt/usecases"
)

type HomeDeviceHandler struct {
	useCase         *usecases.HomeDeviceUseCase
	recommendations *usecases.RecommendationUseCase
	stream          *handlers.WSHandler
}

func NewHomeDeviceHandler(useCase *usecases.HomeDeviceUseCase, recommendations *usecases.RecommendationUseCase, stream *handlers.WSHandler) *HomeDeviceHandler {
	return &HomeDeviceHandler{
		useCase:         useCase,
		recommendations: recommendations,
		stream:          stream,
	}
}

type assignDeviceRequest struct {
	ChosenWatts int     `json:"chosenWatts" binding:"required"`
	WorkHours   float64 `json:"workHours"`
}

type updateHomeDeviceRequest struct {
	ChosenWatts *int     `json:"chosenWatts"`
	WorkHours   *float64 `json:"workHours"`
}

// Assign handles POST /api/v1/home-devices/:deviceId
func (h *HomeDeviceHandler) Assign(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req assignDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	device, owner, err := h.useCase.Assign(user.ID, c.Param("deviceId"), req.ChosenWatts, req.WorkHours)
	if err != nil {
		respondError(c, err)
		return
	}
	h.stream.PushSummary(owner)

	respond(c, http.StatusCreated, "Device added to your home", gin.H{
		"homeDevice": device,
		"budget":     usecases.SummaryOf(owner),
	})
}

// Get handles GET /api/v1/home-devices/:id
func (h *HomeDeviceHandler) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	device, err := h.useCase.Get(user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Home device retrieved successfully", gin.H{
		"homeDevice": device,
	})
}

// List handles GET /api/v1/home-devices
func (h *HomeDeviceHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	p := pageParams(c)

	devices, total, err := h.useCase.List(user.ID, p.Offset(), p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Home devices retrieved successfully", listPayload(devices, p.MetaFor(total)))
}

// Update handles PUT /api/v1/home-devices/:id
func (h *HomeDeviceHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateHomeDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	device, owner, err := h.useCase.Update(user.ID, c.Param("id"), req.ChosenWatts, req.WorkHours)
	if err != nil {
		respondError(c, err)
		return
	}
	h.stream.PushSummary(owner)

	respond(c, http.StatusOK, "Home device updated successfully", gin.H{
		"homeDevice": device,
		"budget":     usecases.SummaryOf(owner),
	})
}

// Remove handles DELETE /api/v1/home-devices/:id
func (h *HomeDeviceHandler) Remove(c *gin.Context) {
	user := middleware.CurrentUser(c)

	owner, err := h.useCase.Remove(user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.stream.PushSummary(owner)

	respond(c, http.StatusOK, "Home device removed successfully", gin.H{
		"budget": usecases.SummaryOf(owner),
	})
}

// CalculateCost handles GET /api/v1/home-devices/calculate-cost
func (h *HomeDeviceHandler) CalculateCost(c *gin.Context) {
	user := middleware.CurrentUser(c)

	report, err := h.useCase.CalculateCost(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Cost calculated successfully", report)
}

// Recommendations handles GET /api/v1/home-devices/recommendations
func (h *HomeDeviceHandler) Recommendations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	report, err := h.recommendations.Affordable(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Recommendations retrieved successfully", report)
}
