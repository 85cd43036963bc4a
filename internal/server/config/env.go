package config

import "github.com/caarlos0/env/v11"

// EnvPrefix prefixes every environment variable the server reads.
const EnvPrefix = "RECIPEBOOK_"

// parseEnv overlays values from RECIPEBOOK_* variables. Unset variables keep
// the current value. A malformed value panics, like a broken config file.
func parseEnv(config *Config) {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
