package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies run fails when database path is empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
service:
  id: test-strings

database:
  path: ""
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

logging:
  level: error
  format: text
  output: stderr

api:
  host: "127.0.0.1"
  port: 18090
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx, configPath)
	if err == nil {
		t.Fatal("run() should fail with empty database path")
	}
}

// TestRun_StartupAndShutdown tests full startup without a broker.
// MQTT is disabled so the service should come up and shut down cleanly
// when the context expires.
func TestRun_StartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	dbPath := filepath.Join(tmpDir, "test.db")

	configContent := `
service:
  id: test-strings
  default_locale: "en"

database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5

mqtt:
  enabled: false

logging:
  level: error
  format: text
  output: stderr

api:
  host: "127.0.0.1"
  port: 18091
  timeouts:
    read: 5
    write: 5
    idle: 10
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := run(ctx, configPath); err != nil {
		t.Errorf("run() error = %v, want clean shutdown", err)
	}

	// The database file should exist with the compiled catalog.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

// TestRunValidate verifies the lint mode accepts the shipped documents.
func TestRunValidate(t *testing.T) {
	if err := runValidate(); err != nil {
		t.Errorf("runValidate() error = %v, want shipped documents to validate", err)
	}
}

// TestGetConfigPath verifies config path precedence.
func TestGetConfigPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("GLSTRINGS_CONFIG", "/env/config.yaml")
		if got := getConfigPath("/flag/config.yaml"); got != "/flag/config.yaml" {
			t.Errorf("getConfigPath() = %q, want flag value", got)
		}
	})

	t.Run("env when no flag", func(t *testing.T) {
		t.Setenv("GLSTRINGS_CONFIG", "/env/config.yaml")
		if got := getConfigPath(""); got != "/env/config.yaml" {
			t.Errorf("getConfigPath() = %q, want env value", got)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("GLSTRINGS_CONFIG", "")
		if got := getConfigPath(""); got != defaultConfigPath {
			t.Errorf("getConfigPath() = %q, want %q", got, defaultConfigPath)
		}
	})
}
