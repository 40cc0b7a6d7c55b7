package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_CreatesLogFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := New(dir, "info")
	defer l.Close()

	for _, name := range []string{InfoFile, WarningFile, ErrorFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}
}

func TestLogger_WritesPerLevel(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, "info")
	defer l.Close()

	l.Info("frame %d submitted", 7)
	l.Warning("slow response")
	l.Error("camera lost")

	assertContains(t, filepath.Join(dir, InfoFile), "frame 7 submitted")
	assertContains(t, filepath.Join(dir, WarningFile), "slow response")
	assertContains(t, filepath.Join(dir, ErrorFile), "camera lost")
}

func TestLogger_DebugGatedByLevel(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, "info")
	l.Debug("hidden detail")
	l.Close()

	data, err := os.ReadFile(filepath.Join(dir, InfoFile))
	if err != nil {
		t.Fatalf("Failed to read info log: %v", err)
	}
	if strings.Contains(string(data), "hidden detail") {
		t.Error("Debug output should be suppressed at info level")
	}

	dir = t.TempDir()
	l = New(dir, "DEBUG")
	l.Debug("visible detail")
	l.Close()

	assertContains(t, filepath.Join(dir, InfoFile), "visible detail")
}

func TestCleanLogs_TruncatesFile(t *testing.T) {
	dir := t.TempDir()
	l := New(dir, "info")
	defer l.Close()

	l.Warning("to be cleared")
	if err := l.CleanLogs(WarningFile); err != nil {
		t.Fatalf("CleanLogs failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, WarningFile))
	if err != nil {
		t.Fatalf("Failed to read warning log: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected empty warning log, got %q", string(data))
	}
}

func assertContains(t *testing.T, path, want string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	if !strings.Contains(string(data), want) {
		t.Errorf("Expected %s to contain %q, got %q", filepath.Base(path), want, string(data))
	}
}
