// Package config loads and validates application configuration from
// environment variables.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Access  AccessConfig  `mapstructure:"access" validate:"required"`
	Speech  SpeechConfig  `mapstructure:"speech" validate:"required"`
	Share   ShareConfig   `mapstructure:"share" validate:"required"`
}

// ServerConfig contains the loopback HTTP surface settings. The server
// only ever binds the loopback interface; the port is the single thing
// to configure.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains local persistence settings.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AccessConfig contains the parent-mode session parameters, both in
// seconds.
type AccessConfig struct {
	PINTimeoutSeconds   int `mapstructure:"pin_timeout_seconds" validate:"required,gt=0"`
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" validate:"required,gt=0"`
}

// SpeechConfig contains voice selection settings.
type SpeechConfig struct {
	TargetLang string `mapstructure:"target_lang" validate:"required"`
}

// ShareConfig contains share-code settings.
type ShareConfig struct {
	TTLHours int `mapstructure:"ttl_hours" validate:"required,gt=0"`
}
