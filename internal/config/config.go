package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
	Content ContentConfig
	Tracker TrackerConfig
	Chat    ChatConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

type LogConfig struct {
	Level string
}

// ContentConfig feeds template interpolation in the content adapter.
type ContentConfig struct {
	OwnerName       string
	StartYear       int
	DefaultLanguage string
}

type TrackerConfig struct {
	FlushInterval string
}

// ChatConfig configures the optional Gemini-backed chat endpoint.
// The API key is a secret and can only be provided via environment variable.
type ChatConfig struct {
	GeminiAPIKey string
	Model        string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 4600,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
		Content: ContentConfig{
			OwnerName:       "Khalil Charfi",
			StartYear:       2019,
			DefaultLanguage: "en",
		},
		Tracker: TrackerConfig{
			FlushInterval: "30s",
		},
		Chat: ChatConfig{
			Model: "gemini-2.0-flash",
		},
	}
}

func defaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			return "persona-data"
		}
	}
	return filepath.Join(dir, "persona")
}

// Load reads configuration from the JSON file backend at
// $XDG_CONFIG_HOME/persona/config.json, then applies PERSONA_* environment
// variable overrides. The Gemini API key is env-only and optional: without
// it the chat endpoint is disabled, everything else works.
func Load() (Config, error) {
	return loadWith(newFileBackend())
}

func loadWith(b Backend) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	return cfg, nil
}
