package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_URL", "VIEWER_PORT", "CAMERA_DEVICE", "AUTOSTART", "SNAPSHOT_LIMIT", "REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ServerURL != "http://localhost:5000" {
		t.Errorf("Expected default server URL, got %s", cfg.ServerURL)
	}
	if cfg.ViewerPort != 8080 {
		t.Errorf("Expected viewer port 8080, got %d", cfg.ViewerPort)
	}
	if cfg.CameraDevice != "0" {
		t.Errorf("Expected camera device 0, got %s", cfg.CameraDevice)
	}
	if cfg.Autostart {
		t.Error("Autostart should default to false")
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected 30s request timeout, got %v", cfg.RequestTimeout)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_URL", "http://detector.local:5000/")
	t.Setenv("VIEWER_PORT", "9090")
	t.Setenv("AUTOSTART", "true")
	t.Setenv("SNAPSHOT_LIMIT", "3")

	cfg := Load()

	if cfg.ServerURL != "http://detector.local:5000" {
		t.Errorf("Trailing slash should be trimmed, got %s", cfg.ServerURL)
	}
	if cfg.ViewerPort != 9090 {
		t.Errorf("Expected viewer port 9090, got %d", cfg.ViewerPort)
	}
	if !cfg.Autostart {
		t.Error("Expected autostart to be enabled")
	}
	if cfg.SnapshotLimit != 3 {
		t.Errorf("Expected snapshot limit 3, got %d", cfg.SnapshotLimit)
	}
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("VIEWER_PORT", "not-a-number")

	if got := getEnvAsInt("VIEWER_PORT", 8080); got != 8080 {
		t.Errorf("getEnvAsInt with invalid value = %d, expected default 8080", got)
	}
}

func TestGetEnvAsBool_Invalid(t *testing.T) {
	t.Setenv("AUTOSTART", "maybe")

	if got := getEnvAsBool("AUTOSTART", true); !got {
		t.Error("getEnvAsBool with invalid value should return the default")
	}
}
