package env

import (
	"os"
	"strings"
)

// ConfigFile is the environment variable overriding the default configuration file path.
const ConfigFile = "USERAUDIT_CONFIG"

// Get returns the value of the environment variable with the given name.
// If the environment variable is not set or blank, the defaultValue is returned.
func Get(name, defaultValue string) string {
	if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
		return value
	}

	return defaultValue
}
