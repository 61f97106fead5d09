package link

import (
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/model"
	"bitwise74/file-linker/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// resolve looks the link up and answers the request itself when that fails
func resolve(c *gin.Context, d *internal.Deps) (*model.Link, bool) {
	id := c.Param("id")

	l, err := d.Registry.Resolve(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGone) {
			c.JSON(http.StatusGone, gin.H{
				"ok":    false,
				"error": "Link expired or revoked",
			})
			return nil, false
		}

		internalError(c, "Failed to resolve link", err, zap.String("id", id))
		return nil, false
	}

	return l, true
}

// fetchURL asks the object resolver where the bytes live
func fetchURL(c *gin.Context, d *internal.Deps, l *model.Link, attachment bool) (string, bool) {
	u, err := d.Resolver.FetchURL(c.Request.Context(), l.ObjectRef, service.FetchOptions{
		Attachment: attachment,
		FileName:   l.DisplayName,
	})
	if err != nil {
		internalError(c, "Failed to resolve object", err, zap.String("id", l.ID))
		return "", false
	}

	return u, true
}

// sendFile redirects to the object, as an attachment when download is set
func sendFile(c *gin.Context, d *internal.Deps, l *model.Link, download bool) {
	u, ok := fetchURL(c, d, l, download)
	if !ok {
		return
	}

	if download {
		c.Header("Content-Disposition", service.ContentDisposition(l.DisplayName))
	}

	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, u)
}

func internalError(c *gin.Context, msg string, err error, fields ...zap.Field) {
	requestID := c.GetString("requestID")

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":     "Internal server error",
		"requestID": requestID,
	})

	zap.L().Error(msg, append(fields, zap.Error(err), zap.String("requestID", requestID))...)
}
