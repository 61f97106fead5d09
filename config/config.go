// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var (
	configDir         = pflag.String("config-dir", ".", "Directory containing config.toml")
	validLogLevels    = []string{"debug", "info", "warn", "error", "fatal"}
	validResolverType = []string{"telegram", "s3"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	return load(*configDir)
}

func load(dir string) error {
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "PORT")
	v.BindEnv("host.base_url", "BASE_URL")
	v.BindEnv("host.cors", "HOST_CORS")

	v.BindEnv("link.ttl_sec", "LINK_TTL_SEC")
	v.BindEnv("link.admin_id", "ADMIN_ID")

	v.BindEnv("store.url", "REDIS_URL", "STORE_URL")
	v.BindEnv("store.cleanup_interval", "STORE_CLEANUP_INTERVAL")

	v.BindEnv("upload.max_mb", "MAX_MB")

	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")
	v.BindEnv("security.jwt_secret", "SECURITY_JWT_SECRET")

	v.BindEnv("telegram.bot_token", "BOT_TOKEN")
	v.BindEnv("telegram.bot_enabled", "BOT_ENABLED")

	v.BindEnv("resolver.type", "RESOLVER_TYPE")

	v.BindEnv("aws.access_key", "AWS_ACCESS_KEY")
	v.BindEnv("aws.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	v.BindEnv("aws.region", "AWS_REGION")
	v.BindEnv("aws.bucket", "AWS_BUCKET")
	v.BindEnv("aws.endpoint", "AWS_ENDPOINT")
	v.BindEnv("aws.presign_ttl", "AWS_PRESIGN_TTL")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)

	v.SetDefault("link.ttl_sec", 86400)

	v.SetDefault("store.cleanup_interval", time.Minute)

	v.SetDefault("upload.max_mb", 0)

	v.SetDefault("security.rate_limit", 2)

	v.SetDefault("telegram.bot_enabled", true)

	v.SetDefault("resolver.type", "telegram")

	v.SetDefault("aws.region", "auto")
	v.SetDefault("aws.presign_ttl", 15*time.Minute)

	// Env only deployments are normal, the file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	return validate()
}

func validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	base := strings.TrimRight(strings.TrimSpace(v.GetString("host.base_url")), "/")
	if base == "" {
		return errors.New("host.base_url is required")
	}

	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("host.base_url must be an absolute URL")
	}
	v.Set("host.base_url", base)

	if v.GetInt64("link.ttl_sec") <= 0 {
		return errors.New("link.ttl_sec must be bigger than 0")
	}

	if raw := v.GetString("link.admin_id"); raw != "" {
		if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
			return errors.New("link.admin_id must be a numeric id")
		}
	}

	if v.GetInt64("upload.max_mb") < 0 {
		return errors.New("upload.max_mb can't be negative")
	}

	if v.GetFloat64("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetDuration("store.cleanup_interval") <= 0 {
		return errors.New("store.cleanup_interval must be bigger than 0")
	}

	switch v.GetString("resolver.type") {
	case "telegram":
		if v.GetString("telegram.bot_token") == "" {
			return errors.New("telegram.bot_token is required for the telegram resolver")
		}
	case "s3":
		if v.GetString("aws.access_key") == "" {
			return errors.New("aws access key can't be empty")
		}
		if v.GetString("aws.secret_access_key") == "" {
			return errors.New("aws secret access key can't be empty")
		}
		if v.GetString("aws.bucket") == "" {
			return errors.New("bucket can't be empty")
		}
		if v.GetDuration("aws.presign_ttl") <= 0 {
			return errors.New("aws.presign_ttl must be bigger than 0")
		}
	default:
		return fmt.Errorf("invalid resolver type provided, expected one of %v", validResolverType)
	}

	if v.GetBool("telegram.bot_enabled") && v.GetString("telegram.bot_token") == "" {
		return errors.New("telegram.bot_token is required when the bot is enabled")
	}

	return nil
}
