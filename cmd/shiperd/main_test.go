package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseFlags(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv("SHIPERD_CONFIG", "/from/env.yaml")
		got, err := parseFlags([]string{"-config", "/from/flag.yaml"})
		if err != nil {
			t.Fatalf("parseFlags() error = %v", err)
		}
		if got != "/from/flag.yaml" {
			t.Errorf("parseFlags() = %q, want /from/flag.yaml", got)
		}
	})

	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("SHIPERD_CONFIG", "/from/env.yaml")
		got, _ := parseFlags(nil)
		if got != "/from/env.yaml" {
			t.Errorf("parseFlags() = %q, want /from/env.yaml", got)
		}
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("SHIPERD_CONFIG", "")
		got, _ := parseFlags(nil)
		if got != defaultConfigPath {
			t.Errorf("parseFlags() = %q, want %q", got, defaultConfigPath)
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		if _, err := parseFlags([]string{"-bogus"}); err == nil {
			t.Error("parseFlags() should reject unknown flags")
		}
	})
}

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx, []string{"-config", "/nonexistent/path/config.yaml"}); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingSecret verifies configuration validation stops startup.
func TestRun_MissingSecret(t *testing.T) {
	t.Setenv("SHIPERD_JWT_SECRET", "")
	configPath := writeConfig(t, `
database:
  path: "`+filepath.Join(t.TempDir(), "fleet.db")+`"
api:
  port: 5000
`)

	err := run(context.Background(), []string{"-config", configPath})
	if err == nil || !strings.Contains(err.Error(), "security.jwt.secret") {
		t.Fatalf("run() error = %v, want jwt secret error", err)
	}
}

// TestRun_ServesUntilCancelled starts the full stack and shuts it down.
func TestRun_ServesUntilCancelled(t *testing.T) {
	port := freePort(t)
	configPath := writeConfig(t, fmt.Sprintf(`
database:
  driver: sqlite3
  path: %q
api:
  host: "127.0.0.1"
  port: %d
logging:
  level: error
  output: discard
security:
  jwt:
    secret: "test-secret-key-at-least-32-characters-long"
`, filepath.Join(t.TempDir(), "fleet.db"), port))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, []string{"-config", configPath}) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/", port)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(url) //nolint:noctx // Test polling
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("GET / status = %d, want %d", resp.StatusCode, http.StatusOK)
			}
			break
		}
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("server did not come up: %v", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run() = %v, want nil", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

// TestRun_PortInUse verifies a bind failure stops startup.
func TestRun_PortInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()

	configPath := writeConfig(t, fmt.Sprintf(`
database:
  path: %q
api:
  host: "127.0.0.1"
  port: %d
logging:
  output: discard
security:
  jwt:
    secret: "test-secret-key-at-least-32-characters-long"
`, filepath.Join(t.TempDir(), "fleet.db"), l.Addr().(*net.TCPAddr).Port))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = run(ctx, []string{"-config", configPath})
	if err == nil || !strings.Contains(err.Error(), "starting API server") {
		t.Fatalf("run() error = %v, want bind failure", err)
	}
}
