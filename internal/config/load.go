package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables with the FOLEM_
// prefix, applies defaults and validates the result. Nested keys use
// underscores: FOLEM_SERVER_PORT, FOLEM_ACCESS_PIN_TIMEOUT_SECONDS.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("storage.path", "./data/folem.db")
	v.SetDefault("access.pin_timeout_seconds", 300)
	v.SetDefault("access.poll_interval_seconds", 30)
	v.SetDefault("speech.target_lang", "sq-AL")
	v.SetDefault("share.ttl_hours", 24)

	v.SetEnvPrefix("FOLEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}
