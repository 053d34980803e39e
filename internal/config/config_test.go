package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q, want openai", cfg.Provider)
	}
	if cfg.WatchIntervalSeconds != 60 {
		t.Errorf("WatchIntervalSeconds = %d, want 60", cfg.WatchIntervalSeconds)
	}
	if !cfg.RedactSecrets {
		t.Error("RedactSecrets should default to true")
	}
	if cfg.Lint.MaxSubjectLength != 75 {
		t.Errorf("Lint.MaxSubjectLength = %d, want 75", cfg.Lint.MaxSubjectLength)
	}
}

func TestLoad_FileAndEnvMerge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, "gitscribe"), 0o755); err != nil {
		t.Fatal(err)
	}
	fileContent := `{"provider":"anthropic","lint":{"maxSubjectLength":50}}`
	if err := os.WriteFile(filepath.Join(dir, "gitscribe", "config.json"), []byte(fileContent), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GITSCRIBE_MODEL", "claude-sonnet-4-6")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("Provider = %q, want file value anthropic", cfg.Provider)
	}
	if cfg.Model != "claude-sonnet-4-6" {
		t.Errorf("Model = %q, want env value", cfg.Model)
	}
	if cfg.Lint.MaxSubjectLength != 50 {
		t.Errorf("Lint.MaxSubjectLength = %d, want file value 50", cfg.Lint.MaxSubjectLength)
	}
	if len(cfg.Lint.Types) == 0 {
		t.Error("Lint.Types should keep defaults when file omits them")
	}
}

func TestLoad_OverridesWin(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GITSCRIBE_PROVIDER", "anthropic")

	cfg, err := Load(map[string]string{"provider": "ollama", "watchInterval": "5"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("Provider = %q, overrides should beat env", cfg.Provider)
	}
	if cfg.WatchIntervalSeconds != 5 {
		t.Errorf("WatchIntervalSeconds = %d, want 5", cfg.WatchIntervalSeconds)
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()

	if err := SetField(&cfg, "lint.types", "feat, fix ,wip"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if len(cfg.Lint.Types) != 3 || cfg.Lint.Types[2] != "wip" {
		t.Errorf("Lint.Types = %v", cfg.Lint.Types)
	}

	if err := SetField(&cfg, "redactSecrets", "false"); err != nil {
		t.Fatalf("SetField error: %v", err)
	}
	if cfg.RedactSecrets {
		t.Error("RedactSecrets should be false after set")
	}

	if err := SetField(&cfg, "maxDiffBytes", "not-a-number"); err == nil {
		t.Error("expected error for non-integer maxDiffBytes")
	}
	if err := SetField(&cfg, "nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Provider = "anthropic"
	cfg.Lint.MaxSubjectLength = 60
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if loaded.Provider != "anthropic" || loaded.Lint.MaxSubjectLength != 60 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestAPIKey_FromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	key, err := APIKey("openai")
	if err != nil {
		t.Fatalf("APIKey error: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key = %q, want sk-test", key)
	}
}

func TestAPIKey_FromDotEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_API_KEY=sk-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)

	key, err := APIKey("openai")
	if err != nil {
		t.Fatalf("APIKey error: %v", err)
	}
	if key != "sk-dotenv" {
		t.Errorf("key = %q, want sk-dotenv", key)
	}
}

func TestAPIKey_Missing(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	chdir(t, t.TempDir())

	_, err := APIKey("anthropic")
	if err == nil {
		t.Fatal("expected error for missing credential")
	}
	if !IsCredentialError(err) {
		t.Errorf("IsCredentialError(%v) = false, want true", err)
	}
}

func TestAPIKey_OllamaOptional(t *testing.T) {
	t.Setenv("GITSCRIBE_OLLAMA_API_KEY", "")
	chdir(t, t.TempDir())

	key, err := APIKey("ollama")
	if err != nil {
		t.Fatalf("APIKey error: %v", err)
	}
	if key != "" {
		t.Errorf("key = %q, want empty for local provider", key)
	}
}

// chdir mirrors testing.T.Chdir, which requires Go 1.24; this keeps the
// tests runnable on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
