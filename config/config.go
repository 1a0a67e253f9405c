package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":80"`

	// remote user-account API consumed by the sign-up screen
	UserAPIURL     string        `env:"USER_API_URL" envDefault:"http://127.0.0.1:80"`
	UserAPITimeout time.Duration `env:"USER_API_TIMEOUT" envDefault:"10s"`

	// host the user-account API in this process (requires the data db)
	ServeAccountAPI bool `env:"SERVE_ACCOUNT_API" envDefault:"false"`

	DB DBConfig `envPrefix:"DB_"`

	// account API only: notified after each sign-up when set
	WebhookURL string `env:"WEBHOOK_URL"`
	WebhookKey string `env:"WEBHOOK_KEY"`

	ScreenTTL     time.Duration `env:"SCREEN_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	Locale       string `env:"LOCALE" envDefault:"ko"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

type DBConfig struct {
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASSWORD"`
	Addr     string `env:"ADDR" envDefault:"127.0.0.1:3306"`
	Name     string `env:"NAME" envDefault:"signup-go"`
}

func Load() (*Config, error) {
	cfg := new(Config)
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
