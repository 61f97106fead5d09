package link

import (
	"bitwise74/file-linker/internal/model"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl := Templates()

	assert.NotNil(t, tmpl.Lookup("password.html"))
	assert.NotNil(t, tmpl.Lookup("player.html"))
}

func TestMediaOf(t *testing.T) {
	assert.Equal(t, "audio", mediaOf(model.KindVoice))
	assert.Equal(t, "audio", mediaOf(model.KindAudio))
	assert.Equal(t, "image", mediaOf(model.KindPhoto))
	assert.Equal(t, "video", mediaOf(model.KindDocument))
	assert.Equal(t, "video", mediaOf(model.KindAnimation))
}

func TestPasswordTemplate(t *testing.T) {
	tmpl := Templates()

	var b strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&b, "password.html", promptPage{ID: "abc", Mode: ModeDownload}))
	assert.Contains(t, b.String(), `action="/p/d/abc"`)
	assert.NotContains(t, b.String(), "Wrong password")

	b.Reset()
	require.NoError(t, tmpl.ExecuteTemplate(&b, "password.html", promptPage{ID: "abc", Mode: ModeStream, Failed: true}))
	assert.Contains(t, b.String(), `action="/p/s/abc"`)
	assert.Contains(t, b.String(), "Wrong password, try again.")
}

func TestPlayerTemplate(t *testing.T) {
	var b strings.Builder
	err := Templates().ExecuteTemplate(&b, "player.html", playerPage{
		ID:     "abc",
		Title:  "<clip>",
		Source: "/v/abc",
		Media:  "audio",
	})
	require.NoError(t, err)

	assert.Contains(t, b.String(), `<audio controls preload="metadata" src="/v/abc">`)
	assert.Contains(t, b.String(), "&lt;clip&gt;")
	assert.Contains(t, b.String(), `href="/d/abc"`)
}
