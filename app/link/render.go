// Package link contains the public link endpoints and the management API
package link

import (
	"bitwise74/file-linker/internal/model"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ModeStream   = "s"
	ModeDownload = "d"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the pages served by this package. The router installs
// them with SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type promptPage struct {
	ID     string
	Mode   string
	Failed bool
}

type playerPage struct {
	ID     string
	Title  string
	Source string
	Media  string
}

func renderPrompt(c *gin.Context, status int, id, mode string) {
	c.Header("Cache-Control", "no-store")
	c.HTML(status, "password.html", promptPage{
		ID:     id,
		Mode:   mode,
		Failed: status == http.StatusUnauthorized,
	})
}

// renderPlayer shows the player page. source is what the media element
// loads, the /v/ route for public links or the resolved URL after an unlock.
func renderPlayer(c *gin.Context, l *model.Link, source string) {
	title := l.DisplayName
	if title == "" {
		title = "Stream"
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "player.html", playerPage{
		ID:     l.ID,
		Title:  title,
		Source: source,
		Media:  mediaOf(l.Kind),
	})
}

func mediaOf(k model.Kind) string {
	switch k {
	case model.KindAudio, model.KindVoice:
		return "audio"
	case model.KindPhoto:
		return "image"
	default:
		return "video"
	}
}
