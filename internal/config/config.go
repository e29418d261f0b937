// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"errors"
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	OCR      OCRConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type AuthConfig struct { //nolint:govet // fieldalignment not critical
	Secret     string // HMAC secret for access tokens, required
	TokenTTL   int    // Access token lifetime in minutes
	BcryptCost int    // Work factor for password hashing
}

type OCRConfig struct { //nolint:govet // fieldalignment not critical
	Languages   []string // Tesseract languages, e.g. ["eng"]
	SaveUploads bool     // Keep a copy of every uploaded image
	UploadDir   string   // Directory for archived uploads
}

// ErrMissingSecret is returned when no token secret is configured.
var ErrMissingSecret = errors.New("auth secret is required (set --auth-secret or AUTH_SECRET)")

func NewFromCLI(cmd *cli.Command) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Auth: AuthConfig{
			Secret:     cmd.String("auth-secret"),
			TokenTTL:   int(cmd.Int("auth-token-ttl")),
			BcryptCost: int(cmd.Int("auth-bcrypt-cost")),
		},
		OCR: OCRConfig{
			Languages:   cmd.StringSlice("ocr-languages"),
			SaveUploads: cmd.Bool("ocr-save-uploads"),
			UploadDir:   cmd.String("ocr-upload-dir"),
		},
	}

	if cfg.Auth.Secret == "" {
		return nil, ErrMissingSecret
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}

	return cfg, nil
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port

	if port == 80 {
		return fmt.Sprintf("http://%s", host)
	}
	return fmt.Sprintf("http://%s:%d", host, port)
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the application",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   10,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/app.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_DSN"), toml.TOML("database.dsn", configFile)),
		},
		&cli.StringFlag{
			Name:    "auth-secret",
			Usage:   "Secret key for signing access tokens",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AUTH_SECRET"), toml.TOML("auth.secret", configFile)),
		},
		&cli.IntFlag{
			Name:    "auth-token-ttl",
			Value:   60,
			Usage:   "Access token lifetime in minutes",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AUTH_TOKEN_TTL"), toml.TOML("auth.token_ttl", configFile)),
		},
		&cli.IntFlag{
			Name:    "auth-bcrypt-cost",
			Value:   10,
			Usage:   "Bcrypt cost for password hashing",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AUTH_BCRYPT_COST"), toml.TOML("auth.bcrypt_cost", configFile)),
		},
		&cli.StringSliceFlag{
			Name:    "ocr-languages",
			Value:   []string{"eng"},
			Usage:   "Tesseract languages used for extraction",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OCR_LANGUAGES"), toml.TOML("ocr.languages", configFile)),
		},
		&cli.BoolFlag{
			Name:    "ocr-save-uploads",
			Value:   true,
			Usage:   "Keep a copy of every uploaded image",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OCR_SAVE_UPLOADS"), toml.TOML("ocr.save_uploads", configFile)),
		},
		&cli.StringFlag{
			Name:    "ocr-upload-dir",
			Value:   "./data/images",
			Usage:   "Directory for archived uploads",
			Sources: cli.NewValueSourceChain(cli.EnvVar("OCR_UPLOAD_DIR"), toml.TOML("ocr.upload_dir", configFile)),
		},
	}
}
