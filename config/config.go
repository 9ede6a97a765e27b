package config

import (
	"github.com/caarlos0/env/v11"
)

// Config holds every environment-driven setting the server needs.
// godotenv loads .env in main before this is parsed.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Prod     bool   `env:"PROD" envDefault:"false"`
	UseHTTPS bool   `env:"USE_HTTPS" envDefault:"false"`
	CertFile string `env:"CERT_FILE"`
	KeyFile  string `env:"KEY_FILE"`

	SessionKey string `env:"KEY"`
	JWTSecret  string `env:"JWT_SECRET"`

	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresDatabase string `env:"POSTGRES_DATABASE"`
	VerbosePostgres  bool   `env:"VERBOSE_POSTGRES" envDefault:"false"`
	MigratePostgres  bool   `env:"MIGRATE_POSTGRES" envDefault:"false"`

	RedisURL string `env:"REDIS_URL" envDefault:"localhost:6379"`

	// Admin mode: allow-listed emails plus a bcrypt hash of the passphrase.
	AdminEmails         []string `env:"ADMIN_EMAILS" envSeparator:","`
	AdminPassphraseHash string   `env:"ADMIN_PASSPHRASE_HASH"`
}

// Load parses the process environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
