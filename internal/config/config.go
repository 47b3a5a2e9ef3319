package config

import (
	"os"
)

type Config struct {
	Port              string
	GinMode           string
	SessionSecret     string
	PersistenceDriver string
	SnapshotFile      string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	SeedDemoData      bool
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		SessionSecret:     getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		PersistenceDriver: getEnv("PERSISTENCE_DRIVER", "memory"),
		SnapshotFile:      getEnv("SNAPSHOT_FILE", "portal_snapshot.json"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBUser:            getEnv("DB_USER", "portaluser"),
		DBPassword:        getEnv("DB_PASSWORD", "portalpassword"),
		DBName:            getEnv("DB_NAME", "portal"),
		SeedDemoData:      getEnv("SEED_DEMO_DATA", "true") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
