package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/handlers"
	"github.com/youssefibrahim146/Volt/middleware"
	"github.com/youssefibrahim146/Volt/usecases"
)

type UserHandler struct {
	useCase *usecases.UserUseCase
	stream  *handlers.WSHandler
}

func NewUserHandler(useCase *usecases.UserUseCase, stream *handlers.WSHandler) *UserHandler {
	return &UserHandler{
		useCase: useCase,
		stream:  stream,
	}
}

type updateProfileRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

type updateBudgetRequest struct {
	Budget *float64 `json:"budget" binding:"required"`
}

// GetProfile handles GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	respond(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"user":   user,
		"budget": usecases.SummaryOf(user),
	})
}

// UpdateProfile handles PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.useCase.UpdateProfile(user.ID, req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Profile updated successfully", gin.H{
		"user": updated,
	})
}

// UpdateBudget handles PUT /api/v1/users/me/budget
func (h *UserHandler) UpdateBudget(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.useCase.UpdateBudget(user.ID, *req.Budget)
	if err != nil {
		respondError(c, err)
		return
	}
	h.stream.PushSummary(updated)

	respond(c, http.StatusOK, "Budget updated successfully", gin.H{
		"user":   updated,
		"budget": usecases.SummaryOf(updated),
	})
}

// DeleteAccount handles DELETE /api/v1/users/me
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.useCase.DeleteAccount(user.ID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Account deleted successfully", nil)
}
