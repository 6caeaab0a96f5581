package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	JWTSecret       string
	SessionTTL      time.Duration
	SessionReapSpec string
	RedisURL        string
	NATSURL         string
	RealtimeChannel string
	CatalogCacheTTL time.Duration
	AdminInterval   time.Duration
	TeacherInterval time.Duration
	StudentInterval time.Duration
	LivenessSeed    int64
	StreamKeepAlive time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("EDGY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "EdgyLearn API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.reap_spec", "@every 1m")
	v.SetDefault("realtime.channel", "edgylearn")
	v.SetDefault("catalog.cache_ttl", "1m")
	v.SetDefault("liveness.admin_interval", "10s")
	v.SetDefault("liveness.teacher_interval", "8s")
	v.SetDefault("liveness.student_interval", "5s")
	v.SetDefault("liveness.seed", 0)
	v.SetDefault("stream.keepalive", "25s")

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"session.ttl",
		"catalog.cache_ttl",
		"liveness.admin_interval",
		"liveness.teacher_interval",
		"liveness.student_interval",
		"stream.keepalive",
	} {
		value, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		durations[key] = value
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		JWTSecret:       v.GetString("jwt.secret"),
		SessionTTL:      durations["session.ttl"],
		SessionReapSpec: strings.TrimSpace(v.GetString("session.reap_spec")),
		RedisURL:        v.GetString("redis.url"),
		NATSURL:         v.GetString("nats.url"),
		RealtimeChannel: strings.TrimSpace(v.GetString("realtime.channel")),
		CatalogCacheTTL: durations["catalog.cache_ttl"],
		AdminInterval:   durations["liveness.admin_interval"],
		TeacherInterval: durations["liveness.teacher_interval"],
		StudentInterval: durations["liveness.student_interval"],
		LivenessSeed:    v.GetInt64("liveness.seed"),
		StreamKeepAlive: durations["stream.keepalive"],
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	for name, interval := range map[string]time.Duration{
		"admin":   cfg.AdminInterval,
		"teacher": cfg.TeacherInterval,
		"student": cfg.StudentInterval,
	} {
		if interval <= 0 {
			return Config{}, fmt.Errorf("liveness %s interval must be positive", name)
		}
	}

	if cfg.RealtimeChannel == "" {
		cfg.RealtimeChannel = "edgylearn"
	}

	if cfg.LivenessSeed == 0 {
		cfg.LivenessSeed = time.Now().UnixNano()
	}

	return cfg, nil
}
