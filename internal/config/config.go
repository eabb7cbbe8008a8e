// Package config loads and validates the application configuration
// from environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Upload   UploadConfig   `mapstructure:"upload"   validate:"required"`
	Seed     SeedConfig     `mapstructure:"seed"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// UploadConfig controls the on-disk image store.
type UploadConfig struct {
	// Dir is the directory uploaded images are written to. Created at
	// startup if missing.
	Dir string `mapstructure:"dir" validate:"required"`

	// MaxFileSize bounds a single multipart upload request, in bytes.
	MaxFileSize int64 `mapstructure:"max_file_size" validate:"required,gt=0"`

	// MaxWidth and MaxHeight define the bounding box images are resized
	// to fit within after upload.
	MaxWidth  int `mapstructure:"max_width"  validate:"required,gt=0"`
	MaxHeight int `mapstructure:"max_height" validate:"required,gt=0"`
}

// SeedConfig controls first-boot sample data. Category reference rows
// are always seeded by migration; sample listings are optional.
type SeedConfig struct {
	SampleListings bool `mapstructure:"sample_listings"`
}
