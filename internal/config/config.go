package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries the process configuration for both the generator and the
// dashboard server. The service key is optional: its absence is a supported
// state that degrades the generator to its fallback tiers.
type Config struct {
	ServiceKey   string
	Weeks        int
	SnapshotPath string
	HTMLPath     string
	ArchiveDir   string
	BaseURL      string
	Port         string
	CronSpec     string
}

// Load reads configuration from the environment, consulting a local .env
// file when present.
func Load() *Config {
	// A missing .env file is fine; real deployments set the environment
	_ = godotenv.Load()

	return &Config{
		ServiceKey:   getEnv("CUSTOMS_SERVICE_KEY", ""),
		Weeks:        getEnvInt("FX_WEEKS", 4),
		SnapshotPath: getEnv("FX_SNAPSHOT_PATH", "data/rates.json"),
		HTMLPath:     getEnv("FX_HTML_PATH", "data/latest-week.html"),
		ArchiveDir:   getEnv("FX_ARCHIVE_DIR", "data/archive"),
		BaseURL:      getEnv("FX_BASE_URL", ""),
		Port:         getEnv("PORT", "8080"),
		CronSpec:     getEnv("FX_CRON_SPEC", "10 9 * * MON"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
