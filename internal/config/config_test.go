package config

import (
	"testing"
)

// memBackend is an in-memory Backend for tests.
type memBackend struct {
	strings map[string]string
	ints    map[string]int
}

func newMemBackend() *memBackend {
	return &memBackend{strings: make(map[string]string), ints: make(map[string]int)}
}

func (m *memBackend) GetString(key string) (string, bool, error) {
	v, ok := m.strings[key]
	return v, ok, nil
}

func (m *memBackend) GetInt(key string) (int, bool, error) {
	v, ok := m.ints[key]
	return v, ok, nil
}

func (m *memBackend) SetString(key, val string) error { m.strings[key] = val; return nil }
func (m *memBackend) SetInt(key string, val int) error { m.ints[key] = val; return nil }
func (m *memBackend) Delete(key string) error {
	delete(m.strings, key)
	delete(m.ints, key)
	return nil
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Server.Port != 4600 {
		t.Errorf("default port: got %d, want 4600", cfg.Server.Port)
	}
	if cfg.Content.StartYear != 2019 {
		t.Errorf("default start year: got %d, want 2019", cfg.Content.StartYear)
	}
	if cfg.Content.DefaultLanguage != "en" {
		t.Errorf("default language: got %q, want en", cfg.Content.DefaultLanguage)
	}
	if cfg.Tracker.FlushInterval != "30s" {
		t.Errorf("default flush interval: got %q, want 30s", cfg.Tracker.FlushInterval)
	}
}

func TestLoad_BackendOverridesDefaults(t *testing.T) {
	b := newMemBackend()
	b.SetInt("server.port", 9999)
	b.SetString("content.owner_name", "Jane Dev")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Server.Port != 9999 {
		t.Errorf("backend port: got %d, want 9999", cfg.Server.Port)
	}
	if cfg.Content.OwnerName != "Jane Dev" {
		t.Errorf("backend owner name: got %q, want Jane Dev", cfg.Content.OwnerName)
	}
}

func TestLoad_EnvOverridesBackend(t *testing.T) {
	b := newMemBackend()
	b.SetInt("server.port", 9999)

	t.Setenv("PERSONA_SERVER_PORT", "7777")
	t.Setenv("PERSONA_LOG_LEVEL", "debug")

	cfg, err := loadWith(b)
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}

	if cfg.Server.Port != 7777 {
		t.Errorf("env port: got %d, want 7777", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("env log level: got %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_BadEnvIntIgnored(t *testing.T) {
	t.Setenv("PERSONA_SERVER_PORT", "not-a-number")

	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Server.Port != 4600 {
		t.Errorf("bad env int should keep default, got %d", cfg.Server.Port)
	}
}

func TestLoad_SecretEnvOnly(t *testing.T) {
	t.Setenv("PERSONA_GEMINI_API_KEY", "test-key")

	cfg, err := loadWith(newMemBackend())
	if err != nil {
		t.Fatalf("loadWith: %v", err)
	}
	if cfg.Chat.GeminiAPIKey != "test-key" {
		t.Errorf("secret env: got %q, want test-key", cfg.Chat.GeminiAPIKey)
	}

	if err := SetKey("chat.gemini_api_key", "x"); err == nil {
		t.Error("expected error setting secret via SetKey")
	}
}

func TestValidKeys_ExcludesSecrets(t *testing.T) {
	for _, k := range ValidKeys() {
		if k == "chat.gemini_api_key" {
			t.Error("secret key listed in ValidKeys")
		}
	}
}
