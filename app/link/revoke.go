package link

import (
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Revoke deletes a link owned by the caller. The administrator may revoke
// any link. A link that is already gone counts as revoked.
func Revoke(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	userID := c.GetInt64("userID")

	id := c.Param("id")

	err := d.Registry.Revoke(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "You don't own this link",
				"requestID": requestID,
			})
			return
		}

		internalError(c, "Failed to revoke link", err, zap.String("id", id), zap.Int64("userID", userID))
		return
	}

	c.Status(http.StatusNoContent)
}
