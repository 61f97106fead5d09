package link

import (
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Download redirects to the object as an attachment, or shows the
// password prompt for locked links
func Download(c *gin.Context, d *internal.Deps) {
	l, ok := resolve(c, d)
	if !ok {
		return
	}

	if service.Probe(l) == service.Challenge {
		renderPrompt(c, http.StatusOK, l.ID, ModeDownload)
		return
	}

	sendFile(c, d, l, true)
}
