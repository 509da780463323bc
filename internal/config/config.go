package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8081"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	FacebookClientID     string `env:"FACEBOOK_CLIENT_ID"`
	FacebookClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`
	FacebookRedirectURL  string `env:"FACEBOOK_REDIRECT_URL"`

	JWTSecret            string        `env:"JWT_SECRET,required"`
	AccessTokenLifetime  time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	RefreshTokenLifetime time.Duration `env:"JWT_REFRESH_EXPIRATION" envDefault:"168h"`

	FrontendURL   string        `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	StateTokenTTL time.Duration `env:"STATE_TOKEN_TTL" envDefault:"300s"`
	CORSOrigin    string        `env:"CORS_ALLOWED_ORIGIN" envDefault:"http://localhost:3000"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	DatabaseDSN string `env:"DATABASE_DSN,required"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
