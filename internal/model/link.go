// Package model defines the records kept by the link registry
package model

import (
	"errors"
	"time"
)

// Kind is a rendering/category hint for the linked object
type Kind string

const (
	KindDocument  Kind = "document"
	KindVideo     Kind = "video"
	KindPhoto     Kind = "photo"
	KindAudio     Kind = "audio"
	KindVoice     Kind = "voice"
	KindAnimation Kind = "animation"
	KindFile      Kind = "file"
)

var ErrInvalidKind = errors.New("invalid link kind")

var kinds = []Kind{KindDocument, KindVideo, KindPhoto, KindAudio, KindVoice, KindAnimation, KindFile}

// ParseKind accepts one of the known kinds. An empty string maps to KindFile.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindFile, nil
	}

	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}

	return "", ErrInvalidKind
}

// Link is the only persisted entity. It is never updated after creation,
// it only stops existing (expiry or revocation).
type Link struct {
	ID          string    `json:"id"`
	ObjectRef   string    `json:"fileId"`   // Opaque reference resolved by the object resolver
	DisplayName string    `json:"fileName"` // Used for the player title and download disposition
	OwnerID     *int64    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	Password    *string   `json:"password"` // nil means public
	Kind        Kind      `json:"kind"`
}

// Locked reports whether the link needs a password before the object is disclosed
func (l *Link) Locked() bool {
	return l.Password != nil && *l.Password != ""
}

// OwnedBy reports whether id created the link
func (l *Link) OwnedBy(id int64) bool {
	return l.OwnerID != nil && *l.OwnerID == id
}

// Upload is what the ingestion side hands to the registry to create a link
type Upload struct {
	ObjectRef   string
	DisplayName string
	OwnerID     *int64
	Kind        Kind
	Size        int64
	Password    *string
	TTL         time.Duration // Zero means the registry default
}
