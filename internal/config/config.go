package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-core-fx/config"
	"github.com/quillcms/quill/internal/articles"
)

type http struct {
	Address     string   `koanf:"address"`
	ProxyHeader string   `koanf:"proxy_header"`
	Proxies     []string `koanf:"proxies"`

	CORSOrigins []string      `koanf:"cors_origins"`
	Limiter     limiterConfig `koanf:"limiter"`
}

type limiterConfig struct {
	Max    int           `koanf:"max"`
	Window time.Duration `koanf:"window"`
}

type storageConfig struct {
	DataDir string `koanf:"data_dir"`
}

type authConfig struct {
	// SecretKey is optional; when empty a random process-lifetime key is
	// generated at startup and all tokens die with the process.
	SecretKey  string        `koanf:"secret_key"`
	TokenTTL   time.Duration `koanf:"token_ttl"`
	BcryptCost int           `koanf:"bcrypt_cost"`
}

type articlesConfig struct {
	PageSize int `koanf:"page_size"`
}

type Config struct {
	HTTP http `koanf:"http"`

	Storage  storageConfig  `koanf:"storage"`
	Auth     authConfig     `koanf:"auth"`
	Articles articlesConfig `koanf:"articles"`
}

func Default() Config {
	//nolint:exhaustruct,mnd //default values
	return Config{
		HTTP: http{
			Address:     "127.0.0.1:3000",
			ProxyHeader: "X-Forwarded-For",
			Proxies:     []string{},

			CORSOrigins: []string{"https://localhost:3000"},
			Limiter: limiterConfig{
				Max:    60,
				Window: time.Minute,
			},
		},

		Storage: storageConfig{
			DataDir: "./data",
		},

		Auth: authConfig{
			TokenTTL: 20 * time.Minute,
		},

		Articles: articlesConfig{
			PageSize: articles.DefaultPageSize,
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	options := []config.Option{}
	if yamlPath := os.Getenv("CONFIG_PATH"); yamlPath != "" {
		options = append(options, config.WithLocalYAML(yamlPath))
	}

	if err := config.Load(&cfg, options...); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
