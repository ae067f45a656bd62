package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "CATALOG"

// DotEnvFile is the optional file of KEY=value pairs loaded before the
// environment is read. Variables already set in the environment win.
const DotEnvFile = ".env"

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.dialect", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("catalog.atomic_tag_sync", true)
}

// bindLegacyEnv maps keys without defaults to their prefixed variable and
// to the unprefixed names used by earlier deployments (DATABASE_URL,
// JAWSDB_URL, DB_NAME, DB_USER, DB_PW). The first set variable wins.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"database.url":      {EnvPrefix + "_DATABASE_URL", "DATABASE_URL", "JAWSDB_URL"},
		"database.name":     {EnvPrefix + "_DATABASE_NAME", "DB_NAME"},
		"database.user":     {EnvPrefix + "_DATABASE_USER", "DB_USER"},
		"database.password": {EnvPrefix + "_DATABASE_PASSWORD", "DB_PW"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterStructValidation(databaseSourceValidation, DatabaseConfig{})
	return val
}

// databaseSourceValidation requires either a URL or enough parts to build one.
func databaseSourceValidation(sl validator.StructLevel) {
	db := sl.Current().Interface().(DatabaseConfig)
	if db.URL != "" {
		return
	}
	if db.Name == "" {
		sl.ReportError(db.Name, "Name", "name", "required_without_url", "")
	}
	if db.User == "" {
		sl.ReportError(db.User, "User", "user", "required_without_url", "")
	}
}

// Validate checks cfg against its struct tags and cross-field rules.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
