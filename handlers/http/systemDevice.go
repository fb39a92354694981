package httpHandler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/usecases"
)

type SystemDeviceHandler struct {
	useCase *usecases.SystemDeviceUseCase
}

func NewSystemDeviceHandler(useCase *usecases.SystemDeviceUseCase) *SystemDeviceHandler {
	return &SystemDeviceHandler{
		useCase: useCase,
	}
}

// Create handles POST /api/v1/system-devices
//
// Expects a multipart form: name, wattsOptions (repeated field or a
// comma separated list), allDay and an image file.
func (h *SystemDeviceHandler) Create(c *gin.Context) {
	name := c.PostForm("name")

	options, err := parseWattsOptions(c.PostFormArray("wattsOptions"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	allDay, _ := strconv.ParseBool(c.DefaultPostForm("allDay", "false"))
	image := formImage(c)

	device, err := h.useCase.Create(name, options, allDay, image)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "System device created successfully", gin.H{
		"systemDevice": device,
	})
}

// Get handles GET /api/v1/system-devices/:id
func (h *SystemDeviceHandler) Get(c *gin.Context) {
	device, err := h.useCase.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "System device retrieved successfully", gin.H{
		"systemDevice": device,
	})
}

// List handles GET /api/v1/system-devices
func (h *SystemDeviceHandler) List(c *gin.Context) {
	p := pageParams(c)

	devices, total, err := h.useCase.List(p.Offset(), p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "System devices retrieved successfully", listPayload(devices, p.MetaFor(total)))
}

// Update handles PUT /api/v1/system-devices/:id
//
// Every form field is optional; absent fields keep their stored value.
func (h *SystemDeviceHandler) Update(c *gin.Context) {
	name := c.PostForm("name")

	var options []int
	if raw := c.PostFormArray("wattsOptions"); len(raw) > 0 {
		parsed, err := parseWattsOptions(raw)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		options = parsed
	}

	var allDay *bool
	if raw, ok := c.GetPostForm("allDay"); ok {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "allDay must be true or false")
			return
		}
		allDay = &value
	}

	device, err := h.useCase.Update(c.Param("id"), name, options, allDay, formImage(c))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "System device updated successfully", gin.H{
		"systemDevice": device,
	})
}

// Delete handles DELETE /api/v1/system-devices/:id
func (h *SystemDeviceHandler) Delete(c *gin.Context) {
	if err := h.useCase.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "System device deleted successfully", nil)
}

// parseWattsOptions flattens repeated form values and comma separated
// lists into one slice of wattages.
func parseWattsOptions(values []string) ([]int, error) {
	var watts []int
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			w, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid wattage option %q", part)
			}
			watts = append(watts, w)
		}
	}
	return watts, nil
}

// formImage returns the uploaded image file, or nil when the request
// carries none.
func formImage(c *gin.Context) *multipart.FileHeader {
	image, err := c.FormFile("image")
	if err != nil {
		return nil
	}
	return image
}
