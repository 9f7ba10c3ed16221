package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	domainerrors "comphub.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Application errors carry their own
// status and message; everything else maps through the sentinel table
// with the sentinel text as the message.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Status, gin.H{
			"error": appErr.Message,
		})
		return
	}

	status := domainerrors.StatusFor(err)
	message := err.Error()
	if status == 500 {
		// Never leak internals to the client.
		message = "internal server error"
	}
	c.JSON(status, gin.H{
		"error": message,
	})
}
