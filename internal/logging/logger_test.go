package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitialize_SilentByDefault(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	if err := Initialize("", ""); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	if GetLogger().Core().Enabled(-1) {
		t.Fatalf("silent logger has debug enabled")
	}
}

func TestInitialize_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cardwallet.log")
	if err := Initialize("debug", path); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	t.Cleanup(func() { SetLogger(nil) })

	Info("cards loaded")
	LogRequest("GET", "/api/cardwallet", 200, 5*time.Millisecond, nil)
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{"cards loaded", "card store request", "/api/cardwallet"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestInitialize_EnvLevel(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "warn")
	path := filepath.Join(t.TempDir(), "env.log")
	if err := Initialize("", path); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}
	t.Cleanup(func() { SetLogger(nil) })

	Info("hidden")
	Warn("shown")
	Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("unexpected log output for warn level:\n%s", data)
	}
}
