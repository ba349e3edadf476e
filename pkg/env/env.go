package env

import "os"

// Get reads an environment variable, falling back when it is unset or
// empty. Bootstrap-time lookups only; runtime config goes through
// pkg/config.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
