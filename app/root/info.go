package root

import (
	"bitwise74/file-linker/internal"
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "tg-file-linker"

var routes = []string{
	"/s/:id (stream page)",
	"/v/:id (video source)",
	"/d/:id (download)",
}

// Info describes the running service
func Info(c *gin.Context, d *internal.Deps) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": serviceName,
		"store":   d.Registry.StoreKind(),
		"routes":  routes,
	})
}
