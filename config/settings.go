package config

import (
	"strconv"
	"strings"
	"time"

	v "github.com/spf13/viper"
)

type S3Settings struct {
	AccessKey       string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string
	PresignTTL      time.Duration
}

// Settings is a typed snapshot of the loaded configuration. Only the
// composition root reads it, packages below it get plain values.
type Settings struct {
	LogLevel string

	Port    int
	BaseURL string
	CORS    []string

	LinkTTL time.Duration
	AdminID *int64

	StoreURL        string
	CleanupInterval time.Duration

	MaxUploadSize int64 // Bytes, 0 disables the check

	RateLimit float64
	JWTSecret string

	BotToken   string
	BotEnabled bool

	ResolverType string
	S3           S3Settings
}

// Get must be called after a successful Setup
func Get() Settings {
	s := Settings{
		LogLevel:        v.GetString("app.log_level"),
		Port:            v.GetInt("host.port"),
		BaseURL:         v.GetString("host.base_url"),
		CORS:            splitList(v.GetStringSlice("host.cors")),
		LinkTTL:         time.Duration(v.GetInt64("link.ttl_sec")) * time.Second,
		StoreURL:        strings.TrimSpace(v.GetString("store.url")),
		CleanupInterval: v.GetDuration("store.cleanup_interval"),
		MaxUploadSize:   v.GetInt64("upload.max_mb") << 20,
		RateLimit:       v.GetFloat64("security.rate_limit"),
		JWTSecret:       v.GetString("security.jwt_secret"),
		BotToken:        v.GetString("telegram.bot_token"),
		BotEnabled:      v.GetBool("telegram.bot_enabled"),
		ResolverType:    v.GetString("resolver.type"),
		S3: S3Settings{
			AccessKey:       v.GetString("aws.access_key"),
			SecretAccessKey: v.GetString("aws.secret_access_key"),
			Region:          v.GetString("aws.region"),
			Bucket:          v.GetString("aws.bucket"),
			Endpoint:        v.GetString("aws.endpoint"),
			PresignTTL:      v.GetDuration("aws.presign_ttl"),
		},
	}

	if raw := v.GetString("link.admin_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			s.AdminID = &id
		}
	}

	return s
}

// splitList accepts both a TOML array and a comma separated env value
func splitList(raw []string) []string {
	var out []string

	for _, r := range raw {
		for _, p := range strings.Split(r, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}

	return out
}
