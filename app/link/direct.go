package link

import (
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Direct redirects straight to the object. Locked links can't be opened
// here, there is no prompt to show to a media element.
func Direct(c *gin.Context, d *internal.Deps) {
	l, ok := resolve(c, d)
	if !ok {
		return
	}

	if service.Probe(l) == service.Challenge {
		c.JSON(http.StatusUnauthorized, gin.H{
			"ok":    false,
			"error": "Password required. Open stream page first.",
		})
		return
	}

	sendFile(c, d, l, false)
}
