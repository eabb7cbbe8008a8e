package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// ECOFINDS_ prefix with underscores for nesting (ECOFINDS_SERVER_PORT,
// ECOFINDS_DATABASE_URL, ...) and take precedence over file values.
// Returns a populated Config or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ECOFINDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine; env vars and defaults cover it.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers default values mirroring the service's
// original deployment: port 5000, uploads/ beside the binary, 16 MiB
// request cap, 800x600 resize bounding box.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_file_size", 16<<20)
	v.SetDefault("upload.max_width", 800)
	v.SetDefault("upload.max_height", 600)
	v.SetDefault("seed.sample_listings", false)

	// Bind nested keys explicitly so AutomaticEnv sees them even when
	// they are absent from the config file.
	for _, key := range []string{
		"server.port",
		"server.log_level",
		"database.url",
		"upload.dir",
		"upload.max_file_size",
		"upload.max_width",
		"upload.max_height",
		"seed.sample_listings",
	} {
		// BindEnv only fails on an empty key.
		_ = v.BindEnv(key)
	}
}
