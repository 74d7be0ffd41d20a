package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Fatalf("expected unique ids, got %s twice", a)
	}
	if !IsID(a) {
		t.Errorf("expected %q to be a valid id", a)
	}
	if IsID("../../etc/passwd") {
		t.Error("expected path-like value to be rejected")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "muse.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Info("hello", "component", "test")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("expected log file to contain message, got %q", string(data))
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{":memory:", ":memory:?_foreign_keys=on&_busy_timeout=5000"},
		{"./muse.db", "./muse.db?_foreign_keys=on&_busy_timeout=5000"},
		{"file:muse.db?cache=shared", "file:muse.db?cache=shared&_foreign_keys=on&_busy_timeout=5000"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := dsn(tt.path); got != tt.want {
				t.Errorf("dsn(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestBrowserCommand(t *testing.T) {
	t.Run("known platforms", func(t *testing.T) {
		for _, goos := range []string{"darwin", "linux", "windows"} {
			cmd, err := browserCommand(goos, "http://127.0.0.1:3000")
			if err != nil {
				t.Fatalf("browserCommand(%s) error = %v", goos, err)
			}
			if last := cmd.Args[len(cmd.Args)-1]; last != "http://127.0.0.1:3000" {
				t.Errorf("browserCommand(%s) url arg = %s", goos, last)
			}
		}
	})

	t.Run("unsupported platform", func(t *testing.T) {
		if _, err := browserCommand("plan9", "http://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}

func TestMarshalJSON(t *testing.T) {
	v := map[string]int{"a": 1}

	compact, err := MarshalJSON(v, false)
	if err != nil || string(compact) != `{"a":1}` {
		t.Errorf("unexpected compact output %s (%v)", compact, err)
	}

	pretty, err := MarshalJSON(v, true)
	if err != nil || string(pretty) != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected pretty output %s (%v)", pretty, err)
	}
}
