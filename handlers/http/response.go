package httpHandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youssefibrahim146/Volt/apperrors"
)

// respond writes the uniform success envelope.
func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

// respondError translates an error into the envelope via its taxonomy kind.
// Internal causes never reach the client.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(apperrors.KindOf(err)), gin.H{
		"status":  "error",
		"message": apperrors.MessageOf(err),
		"data":    nil,
	})
}

// respondBadRequest reports a binding failure before any use case ran.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": message,
		"data":    nil,
	})
}

// listPayload pairs a page of items with its pagination metadata.
func listPayload(items interface{}, meta Meta) gin.H {
	return gin.H{
		"items":      items,
		"pagination": meta,
	}
}
