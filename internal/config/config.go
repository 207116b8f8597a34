package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENVIRONMENT" default:"development"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	// JWTSecret is used directly when set. When empty and JWTSecretName is
	// set, the secret is fetched from Secret Manager at startup instead.
	JWTSecret     string `envconfig:"JWT_SECRET"`
	JWTSecretName string `envconfig:"JWT_SECRET_NAME"`

	GCPProjectID  string `envconfig:"GCP_PROJECT_ID"`
	ActivityTopic string `envconfig:"ACTIVITY_TOPIC"`

	// S3 settings for profile photo uploads. Optional: when S3URL is empty
	// the photo upload endpoint is disabled.
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction reports whether the app runs with production settings.
// Error messages for unexpected failures are suppressed in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
