package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromValue(t *testing.T) {
	secret, err := Load(Source{Name: "api key", Value: "  token-123  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "token-123" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadFilePrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("file-token\n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	secret, err := Load(Source{Name: "api key", Value: "inline-token", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "file-token" {
		t.Fatalf("expected file to win over value, got %q", secret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RESUME_AGENT_TEST_KEY", " env-token ")

	secret, err := Load(Source{Name: "api key", Env: "RESUME_AGENT_TEST_KEY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if secret != "env-token" {
		t.Fatalf("expected env secret, got %q", secret)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatal("expected error for unconfigured secret")
	}

	_, err := Load(Source{Name: "api key", Env: "RESUME_AGENT_UNSET_KEY"})
	if err == nil {
		t.Fatal("expected error for unset env secret")
	}

	if !strings.Contains(err.Error(), "RESUME_AGENT_UNSET_KEY") {
		t.Fatalf("expected error to name the env var, got %q", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: path}); err == nil {
		t.Fatal("expected error for empty key file")
	}
}
