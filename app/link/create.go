package link

import (
	"bitwise74/file-linker/internal"
	"bitwise74/file-linker/internal/model"
	"bitwise74/file-linker/pkg/validators"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createRequest struct {
	ObjectRef string  `json:"object_ref"`
	Name      string  `json:"name"`
	Kind      string  `json:"kind"`
	Size      int64   `json:"size"`
	Password  *string `json:"password,omitempty"`
	TTLSec    int64   `json:"ttl_sec,omitempty"`
}

type createResponse struct {
	ID          string     `json:"id"`
	Kind        model.Kind `json:"kind"`
	Name        string     `json:"name"`
	StreamURL   string     `json:"stream_url"`
	DownloadURL string     `json:"download_url"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

// Create registers a link for an object that was uploaded elsewhere. The
// caller becomes the owner.
func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")
	userID := c.GetInt64("userID")

	var data createRequest
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to read JSON body", zap.Error(err))
		return
	}

	kind, err := model.ParseKind(data.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     fmt.Sprintf("Unknown kind %q", data.Kind),
			"requestID": requestID,
		})
		return
	}

	if data.TTLSec < 0 || data.Size < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "size and ttl_sec can't be negative",
			"requestID": requestID,
		})
		return
	}

	u := model.Upload{
		ObjectRef:   data.ObjectRef,
		DisplayName: data.Name,
		OwnerID:     &userID,
		Kind:        kind,
		Size:        data.Size,
		Password:    data.Password,
		TTL:         time.Duration(data.TTLSec) * time.Second,
	}

	if err := validators.Upload(u, d.MaxUploadSize); err != nil {
		status, msg := http.StatusBadRequest, err.Error()
		switch {
		case errors.Is(err, validators.ErrNoFile):
			msg = "object_ref is required"
		case errors.Is(err, validators.ErrFileTooLarge):
			status, msg = http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large (limit: %d MB)", d.MaxUploadSize>>20)
		}

		c.JSON(status, gin.H{
			"error":     msg,
			"requestID": requestID,
		})
		return
	}

	l, err := d.Registry.CreateLink(c.Request.Context(), u)
	if err != nil {
		internalError(c, "Failed to create link", err, zap.Int64("userID", userID))
		return
	}

	c.JSON(http.StatusCreated, createResponse{
		ID:          l.ID,
		Kind:        l.Kind,
		Name:        l.DisplayName,
		StreamURL:   d.BaseURL + "/s/" + l.ID,
		DownloadURL: d.BaseURL + "/d/" + l.ID,
		ExpiresAt:   l.CreatedAt.Add(d.Registry.TTL(u)),
	})
}
