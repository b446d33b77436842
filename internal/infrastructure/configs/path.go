package configs

import (
	"os"

	"github.com/hilthontt/huddle/internal/infrastructure/env"
)

var configCandidates = []string{
	"./config.yaml",
	"./config.yml",
	"./tmp/config.yaml",
	"../../config.yaml", // keep for local dev
	"/etc/huddle/config.yaml",
	"/app/config.yaml", // common in Docker
}

// DetermineConfigPath picks the config file from the -config flag value, the
// HUDDLE_CONFIG env var or the first existing well-known location. An empty
// result means the server runs on defaults and env overrides alone.
func DetermineConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if p := env.GetString("HUDDLE_CONFIG", ""); p != "" {
		return p
	}

	for _, p := range configCandidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
