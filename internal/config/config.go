package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings. Values come from the environment;
// main loads .env first so local development works without exports.
type Config struct {
	Port   int    `envconfig:"PORT" default:"8080"`
	DBName string `envconfig:"DB_NAME" default:"pulsecheck"`

	MongoURI    string `envconfig:"MONGODB_URI" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	AdminAPIKey string `envconfig:"ADMIN_API_KEY" required:"true"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY" default:""`
	ResendAPIKey string `envconfig:"RESEND_API_KEY" default:""`
	FromEmail    string `envconfig:"FROM_EMAIL" default:"no-reply@pulsecheck.app"`

	// BaseURL overrides the scheme://host detected from incoming requests
	// when building form links. Set it behind a proxy.
	BaseURL string `envconfig:"BASE_URL" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
