package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Telegram Telegram
	Monitor  Monitor
	Postgres Postgres
	Bot      Bot
	Server   Server
}

type Bot struct {
	// Пустой токен отключает бота и алерты.
	Token   string `env:"BOT_TOKEN"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

type Server struct {
	HTTPAddress    string `env:"HTTP_ADDRESS" envDefault:":8080"`
	ProbeAddress   string `env:"PROBE_ADDRESS" envDefault:":8091"`
	MetricsAddress string `env:"METRICS_ADDRESS" envDefault:":9090"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
