package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AuthConfig struct {
	TokenSecret string `mapstructure:"token_secret"`
}

// Load reads configuration with the following priority (highest first):
// environment variables (POSTGRES_HOST, SERVER_PORT, ... or APP_DATABASE_HOST style),
// a .env file in the working directory, then defaults.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading .env file")
		}
	}

	bindings := map[string]string{
		"database.host":           "POSTGRES_HOST",
		"database.port":           "POSTGRES_PORT",
		"database.user":           "POSTGRES_USER",
		"database.password":       "POSTGRES_PASSWORD",
		"database.dbname":         "POSTGRES_DB",
		"database.sslmode":        "POSTGRES_SSLMODE",
		"server.port":             "SERVER_PORT",
		"server.host":             "SERVER_HOST",
		"server.shutdown_timeout": "SERVER_SHUTDOWN_TIMEOUT",
		"log.level":               "LOG_LEVEL",
		"auth.token_secret":       "TOKEN_AUTH_SECRET",
	}
	for key, env := range bindings {
		// .env keys are read lowercased and sit between defaults and the environment.
		if file := strings.ToLower(env); v.InConfig(file) {
			v.SetDefault(key, v.Get(file))
		}
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "startup_roster")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("log.level", "info")

	v.SetDefault("auth.token_secret", "")
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required")
	}

	if cfg.Database.Host == "" {
		return errors.New("database host is required")
	}

	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return errors.Errorf("invalid database port: %d", cfg.Database.Port)
	}

	if cfg.Database.DBName == "" {
		return errors.New("database name is required")
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	if cfg.Auth.TokenSecret == "" {
		return errors.New("token secret is required")
	}

	return nil
}

// DSN returns a pgx connection string.
func (c *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + strconv.Itoa(c.Port),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}
