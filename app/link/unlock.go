package link

import (
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Unlock handles the password form. The credential is checked for this
// request only, nothing is remembered afterwards.
func Unlock(c *gin.Context, d *internal.Deps) {
	mode := c.Param("mode")
	if mode != ModeStream && mode != ModeDownload {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Not found",
			"requestID": c.GetString("requestID"),
		})
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		status, msg := http.StatusBadRequest, "Malformed form body"

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status, msg = http.StatusRequestEntityTooLarge, "Request body size exceeds limit"
		}

		c.AbortWithStatusJSON(status, gin.H{
			"error":     msg,
			"requestID": c.GetString("requestID"),
		})
		return
	}

	l, ok := resolve(c, d)
	if !ok {
		return
	}

	pass := strings.TrimSpace(c.Request.PostForm.Get("pass"))
	if service.Submit(l, pass) == service.Rejected {
		renderPrompt(c, http.StatusUnauthorized, l.ID, mode)
		return
	}

	if mode == ModeDownload {
		sendFile(c, d, l, true)
		return
	}

	if !l.Locked() {
		renderPlayer(c, l, "/v/"+l.ID)
		return
	}

	u, ok := fetchURL(c, d, l, false)
	if !ok {
		return
	}

	renderPlayer(c, l, u)
}
