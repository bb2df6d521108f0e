package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Running localy or not
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Local app host and port
	Host string `env:"HOST" envDefault:"localhost"`
	Port int    `env:"PORT" envDefault:"3000"`

	// Caption languages to try, in order of preference
	Languages []string `env:"CAPTION_LANGUAGES" envDefault:"en,fr,es,de"`

	// CORS
	AllowedOrigin string `env:"ALLOWED_ORIGIN" envDefault:"*"`

	// Upstream HTTP client settings
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`
	UserAgent   string        `env:"USER_AGENT" envDefault:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`

	// Google APIs settings
	YouTubeAPIKey string `env:"YOUTUBE_API_KEY"`

	// Redis
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	CacheTimeout  time.Duration `env:"CACHE_TIMEOUT" envDefault:"86400s"`
}

// New creates new config object
func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse the config; %v", err)
	}
	return cfg
}

// Parse parses the config from the environment
func Parse() (*Config, error) {

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	// Normalize the language codes and drop the empty ones
	languages := make([]string, 0, len(cfg.Languages))
	for _, lang := range cfg.Languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang != "" {
			languages = append(languages, lang)
		}
	}

	if len(languages) == 0 {
		return nil, errors.New("no caption languages defined in env")
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}

	cfg.Languages = languages
	return &cfg, nil
}

// Addr is the address the HTTP server listens on
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RedisAddr is the Redis host:port pair
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}
