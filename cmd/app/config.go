package main

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"

	"github.com/sushihentaime/blogsite/internal/common"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Environment string `mapstructure:"ENVIRONMENT"`
	Version     string `mapstructure:"VERSION"`
	SecretKey   string `mapstructure:"SECRET_KEY"`

	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBHost         string        `mapstructure:"POSTGRES_HOST"`
	DBPort         string        `mapstructure:"POSTGRES_PORT"`
	DBUser         string        `mapstructure:"POSTGRES_USER"`
	DBPassword     string        `mapstructure:"POSTGRES_PASSWORD"`
	DBName         string        `mapstructure:"POSTGRES_DB"`
	DBMaxOpenConns int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxIdleTime  time.Duration `mapstructure:"DB_MAX_IDLE_TIME"`

	MailHost         string `mapstructure:"MAIL_HOST"`
	MailPort         int    `mapstructure:"MAIL_PORT"`
	MailUser         string `mapstructure:"MAIL_USER"`
	MailPassword     string `mapstructure:"MAIL_PASSWORD"`
	MailSender       string `mapstructure:"MAIL_SENDER"`
	ContactRecipient string `mapstructure:"CONTACT_RECIPIENT"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

var defaults = map[string]any{
	"PORT":              "4000",
	"ENVIRONMENT":       "development",
	"VERSION":           "1.0.0",
	"SECRET_KEY":        "",
	"DATABASE_URL":      "",
	"POSTGRES_HOST":     "localhost",
	"POSTGRES_PORT":     "5432",
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "blog",
	"DB_MAX_OPEN_CONNS": 25,
	"DB_MAX_IDLE_CONNS": 25,
	"DB_MAX_IDLE_TIME":  "15m",
	"MAIL_HOST":         "",
	"MAIL_PORT":         587,
	"MAIL_USER":         "",
	"MAIL_PASSWORD":     "",
	"MAIL_SENDER":       "Blog <no-reply@example.com>",
	"CONTACT_RECIPIENT": "",
	"TLS_CERT_FILE":     "./tls/cert.pem",
	"TLS_KEY_FILE":      "./tls/key.pem",
}

// loadConfig reads the optional env file at path. Environment variables take precedence over the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if len(config.SecretKey) < 16 {
		return nil, errors.New("SECRET_KEY must be set to at least 16 characters")
	}

	return &config, nil
}

func (c *Config) dsn() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	return common.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}

func (c *Config) production() bool {
	return c.Environment == "production"
}
