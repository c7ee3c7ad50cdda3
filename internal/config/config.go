// Package config reads the process configuration from the environment.
package config

import (
	"path/filepath"
	"time"

	"owid-charts/pkg/utils"
)

const (
	// DefaultDataURL is the public OWID COVID-19 dataset.
	DefaultDataURL = "https://raw.githubusercontent.com/owid/covid-19-data/master/public/data/owid-covid-data.csv"
	// DataFileName is the canonical name of the cached dataset.
	DataFileName = "owid-covid-data.csv"

	defaultDownloadTimeout = 2 * time.Minute
)

type Config struct {
	DataURL         string
	DataDir         string
	DownloadTimeout time.Duration
	DownloadRetries int
	DBPath          string
	OutputDir       string
	Addr            string
	LogLevel        string
	LogColor        bool
}

// Load reads every setting, applying defaults for unset variables.
func Load() Config {
	return Config{
		DataURL:         utils.GetStringEnv("OWID_DATA_URL", DefaultDataURL),
		DataDir:         utils.GetStringEnv("OWID_DATA_DIR", "."),
		DownloadTimeout: utils.GetDurationEnv("OWID_DOWNLOAD_TIMEOUT", defaultDownloadTimeout),
		DownloadRetries: utils.GetIntEnv("OWID_DOWNLOAD_RETRIES", 3),
		DBPath:          utils.GetStringEnv("OWID_DB_PATH", "owid-charts.db"),
		OutputDir:       utils.GetStringEnv("OWID_OUTPUT_DIR", "exports"),
		Addr:            utils.GetStringEnv("OWID_ADDR", ":8080"),
		LogLevel:        utils.GetStringEnv("LOG_LEVEL", "info"),
		LogColor:        utils.GetBoolEnv("LOG_COLOR", true),
	}
}

// DataPath is the cached dataset location.
func (c Config) DataPath() string {
	return filepath.Join(c.DataDir, DataFileName)
}
