package link

import (
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stream serves the player page, or the password prompt for locked links
func Stream(c *gin.Context, d *internal.Deps) {
	l, ok := resolve(c, d)
	if !ok {
		return
	}

	if service.Probe(l) == service.Challenge {
		renderPrompt(c, http.StatusOK, l.ID, ModeStream)
		return
	}

	renderPlayer(c, l, "/v/"+l.ID)
}
