package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerURL             string // Origin serving /detect and /stats
	ViewerPort            int
	CameraDevice          string // Device used for facingMode "environment"
	CameraDeviceUser      string // Device used for facingMode "user", empty = unsupported
	CameraName            string
	RequestTimeout        time.Duration
	Autostart             bool
	LogDirectory          string
	LogLevel              string
	SnapshotEnabled       bool
	SnapshotDirectory     string
	SnapshotDatabase      string
	SnapshotLimit         int // Annotated previews kept per flush window
	SnapshotFlushInterval int // Seconds
}

// Load reads the optional .env file and builds the Config from the environment.
func Load() *Config {
	// Missing .env is fine, real environment wins anyway.
	_ = godotenv.Load()

	return &Config{
		ServerURL:             strings.TrimRight(getEnv("SERVER_URL", "http://localhost:5000"), "/"),
		ViewerPort:            getEnvAsInt("VIEWER_PORT", 8080),
		CameraDevice:          getEnv("CAMERA_DEVICE", "0"),
		CameraDeviceUser:      getEnv("CAMERA_DEVICE_USER", ""),
		CameraName:            getEnv("CAMERA_NAME", "live"),
		RequestTimeout:        time.Duration(getEnvAsInt("REQUEST_TIMEOUT", 30)) * time.Second,
		Autostart:             getEnvAsBool("AUTOSTART", false),
		LogDirectory:          getEnv("LOG_DIR", filepath.Join(".", "logs")),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		SnapshotEnabled:       getEnvAsBool("SNAPSHOT_ENABLED", true),
		SnapshotDirectory:     getEnv("SNAPSHOT_DIR", filepath.Join(".", "snapshots")),
		SnapshotDatabase:      getEnv("SNAPSHOT_DB", filepath.Join(".", "data", "snapshots.db")),
		SnapshotLimit:         getEnvAsInt("SNAPSHOT_LIMIT", 10),
		SnapshotFlushInterval: getEnvAsInt("SNAPSHOT_FLUSH_INTERVAL", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
