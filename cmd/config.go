package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"marketplace"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty,unset"`

	RiderFee         decimal.Decimal `env:"RIDER_FEE" envDefault:"0"`
	SmallOrderFee    decimal.Decimal `env:"SMALL_ORDER_FEE" envDefault:"29"`
	TokenMaxAttempts int             `env:"TOKEN_MAX_ATTEMPTS" envDefault:"5"`
	Timezone         string          `env:"TIMEZONE" envDefault:"UTC"`

	NotifierTimeout        time.Duration `env:"NOTIFIER_TIMEOUT" envDefault:"5s"`
	NotifierBuffer         int           `env:"NOTIFIER_BUFFER" envDefault:"8"`
	NotifierResyncSchedule string        `env:"NOTIFIER_RESYNC_SCHEDULE" envDefault:"*/30 * * * * *"`
	WSWriteTimeout         time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"10s"`

	// Redis relay is enabled when RedisAddr is set.
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"marketplace:orders:available"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location resolves Timezone; earnings windows start at midnight there.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
