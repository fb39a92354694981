package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/usecases"
)

type AuthHandler struct {
	useCase *usecases.UserUseCase
}

func NewAuthHandler(useCase *usecases.UserUseCase) *AuthHandler {
	return &AuthHandler{
		useCase: useCase,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.useCase.Register(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Account created successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.useCase.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Logged in successfully", gin.H{
		"user":  user,
		"token": token,
	})
}
