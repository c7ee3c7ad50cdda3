package utils

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

func GetStringEnv(envVar string, defaultValue string) string {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		slog.Debug("environment variable is not set, using default", "var", envVar, "default", defaultValue)
		return defaultValue
	}
	return envValue
}

func GetIntEnv(envVar string, defaultValue int) int {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(envValue)
	if err != nil {
		panic(fmt.Sprintf("Environment variable %s is not valid. '%s' is not an integer", envVar, envValue))
	}
	return intValue
}

func GetBoolEnv(envVar string, defaultValue bool) bool {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(envValue)
	if err != nil {
		panic(fmt.Sprintf("Environment variable %s is not valid. '%s' cannot be converted to bool", envVar, envValue))
	}
	return boolValue
}

// GetDurationEnv reads a Go duration ("90s", "2m"). Invalid values fall back
// to the default.
func GetDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	envValue, ok := os.LookupEnv(envVar)
	if !ok || envValue == "" {
		return defaultValue
	}
	return ParseDuration(envValue, defaultValue)
}
