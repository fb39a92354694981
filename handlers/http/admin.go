package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/middleware"
	"github.com/youssefibrahim146/Volt/usecases"
)

type AdminHandler struct {
	useCase *usecases.AdminUseCase
}

func NewAdminHandler(useCase *usecases.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		useCase: useCase,
	}
}

// Register handles POST /api/v1/admin/register
func (h *AdminHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	admin, token, err := h.useCase.Register(req.Email, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Admin account created successfully", gin.H{
		"admin": admin,
		"token": token,
	})
}

// Login handles POST /api/v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	admin, token, err := h.useCase.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Logged in successfully", gin.H{
		"admin": admin,
		"token": token,
	})
}

// GetProfile handles GET /api/v1/admin/me
func (h *AdminHandler) GetProfile(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)

	respond(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"admin": admin,
	})
}
