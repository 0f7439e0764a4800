package configs

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type ENV struct {
	Port    string `env:"APP_PORT" envDefault:":8000"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8000"`

	DB       DBConfig
	JWT      JWTConfig
	Email    EmailConfig
	Midtrans MidtransConfig
	Upload   UploadConfig
	Order    OrderConfig

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DBConfig struct {
	Host       string        `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port       string        `env:"DB_PORT" envDefault:"3306"`
	User       string        `env:"DB_USER" envDefault:"root"`
	Password   string        `env:"DB_PASSWORD"`
	Name       string        `env:"DB_NAME" envDefault:"storefront"`
	MaxRetries int           `env:"DB_MAX_RETRIES" envDefault:"10"`
	RetryDelay time.Duration `env:"DB_RETRY_DELAY" envDefault:"5s"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name,
	)
}

type JWTConfig struct {
	Secret     string        `env:"JWT_SECRET"`
	ExpireTime time.Duration `env:"JWT_EXPIRE_TIME" envDefault:"90d"`
}

type EmailConfig struct {
	Host     string `env:"EMAIL_HOST"`
	Port     string `env:"EMAIL_PORT" envDefault:"587"`
	Username string `env:"EMAIL_USERNAME"`
	Password string `env:"EMAIL_PASSWORD"`
	From     string `env:"EMAIL_FROM"`
}

type MidtransConfig struct {
	ServerKey  string `env:"MIDTRANS_SERVER_KEY"`
	ClientKey  string `env:"MIDTRANS_CLIENT_KEY"`
	Production bool   `env:"MIDTRANS_PRODUCTION" envDefault:"false"`
	FinishURL  string `env:"CHECKOUT_FINISH_URL" envDefault:"http://localhost:8000/orders"`
}

type UploadConfig struct {
	Dir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"1048576"`
	MaxWidth uint   `env:"UPLOAD_MAX_WIDTH" envDefault:"1200"`
}

type OrderConfig struct {
	TaxPrice      decimal.Decimal `env:"ORDER_TAX_PRICE" envDefault:"0"`
	ShippingPrice decimal.Decimal `env:"ORDER_SHIPPING_PRICE" envDefault:"0"`
}

func LoadEnv() (ENV, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Warn("No .env file found, using process environment")
	}

	cfg := ENV{}
	if err := env.ParseWithOptions(&cfg, env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(time.Duration(0)): parseDuration,
		},
	}); err != nil {
		return ENV{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Email.From == "" {
		cfg.Email.From = cfg.Email.Username
	}
	return cfg, nil
}

// Validate checks the settings the HTTP server cannot run without.
func (e ENV) Validate() error {
	if e.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is not set, run generate-keys")
	}
	if e.Midtrans.ServerKey == "" {
		if e.IsProduction() {
			return fmt.Errorf("MIDTRANS_SERVER_KEY is not set")
		}
		slog.Warn("MIDTRANS_SERVER_KEY is not set, card checkout and payment webhooks are disabled")
	}
	return nil
}

// parseDuration accepts a day suffix ("90d") on top of time.ParseDuration.
func parseDuration(v string) (any, error) {
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q", v)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(v)
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}
