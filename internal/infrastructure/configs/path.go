package configs

import (
	"flag"
	"os"

	"inkboard/internal/infrastructure/env"
)

var configPathCandidates = []string{
	"./config.yaml",
	"./config.yml",
	"/etc/inkboard/config.yaml",
	"/app/config.yaml",
}

// DetermineConfigPath resolves the config file: the --config flag wins, then
// the INKBOARD_CONFIG env var, then the first conventional location that
// exists. An empty result is fine, Load then runs on defaults plus env
// overrides.
func DetermineConfigPath() string {
	var path string
	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path != "" {
		return path
	}

	if fromEnv := env.GetString("INKBOARD_CONFIG", ""); fromEnv != "" {
		return fromEnv
	}

	for _, candidate := range configPathCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
