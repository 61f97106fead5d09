package bot

import (
	"strconv"
	"time"

	"github.com/jellydator/ttlcache/v2"
)

// Sessions holds the password a chat asked to put on its next link. An
// entry lives until the next link is created, /clearp, or the TTL runs out.
type Sessions struct {
	c *ttlcache.Cache
}

func NewSessions(ttl time.Duration) *Sessions {
	c := ttlcache.NewCache()
	c.SkipTTLExtensionOnHit(true)
	_ = c.SetTTL(ttl)

	return &Sessions{c: c}
}

func chatKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func (s *Sessions) SetPassword(chatID int64, password string) {
	_ = s.c.Set(chatKey(chatID), password)
}

// Password returns the pending password for the chat, nil if there is none
func (s *Sessions) Password(chatID int64) *string {
	v, err := s.c.Get(chatKey(chatID))
	if err != nil {
		return nil
	}

	p, ok := v.(string)
	if !ok || p == "" {
		return nil
	}

	return &p
}

func (s *Sessions) Clear(chatID int64) {
	_ = s.c.Remove(chatKey(chatID))
}

func (s *Sessions) Close() error {
	return s.c.Close()
}
