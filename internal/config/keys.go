package config

import (
	"fmt"
	"os"
	"strconv"
)

type keyType int

const (
	kString keyType = iota
	kInt
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "server.port", typ: kInt, env: "PERSONA_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "storage.data_dir", typ: kString, env: "PERSONA_STORAGE_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "log.level", typ: kString, env: "PERSONA_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "content.owner_name", typ: kString, env: "PERSONA_CONTENT_OWNER_NAME",
		apply:   func(cfg *Config, v any) { cfg.Content.OwnerName = v.(string) },
		extract: func(cfg Config) any { return cfg.Content.OwnerName },
	},
	{
		key: "content.start_year", typ: kInt, env: "PERSONA_CONTENT_START_YEAR",
		apply:   func(cfg *Config, v any) { cfg.Content.StartYear = v.(int) },
		extract: func(cfg Config) any { return cfg.Content.StartYear },
	},
	{
		key: "content.default_language", typ: kString, env: "PERSONA_CONTENT_DEFAULT_LANGUAGE",
		apply:   func(cfg *Config, v any) { cfg.Content.DefaultLanguage = v.(string) },
		extract: func(cfg Config) any { return cfg.Content.DefaultLanguage },
	},
	{
		key: "tracker.flush_interval", typ: kString, env: "PERSONA_TRACKER_FLUSH_INTERVAL",
		apply:   func(cfg *Config, v any) { cfg.Tracker.FlushInterval = v.(string) },
		extract: func(cfg Config) any { return cfg.Tracker.FlushInterval },
	},
	{
		key: "chat.model", typ: kString, env: "PERSONA_CHAT_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Chat.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Chat.Model },
	},
	{
		key: "chat.gemini_api_key", typ: kString, env: "PERSONA_GEMINI_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Chat.GeminiAPIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Chat.GeminiAPIKey },
	},
}

func applyBackend(cfg *Config, b Backend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		switch s.typ {
		case kString:
			v, ok, err := b.GetString(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		case kInt:
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	for _, s := range specs {
		if s.env == "" {
			continue
		}
		raw := os.Getenv(s.env)
		if raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			if i, err := strconv.Atoi(raw); err == nil {
				s.apply(cfg, i)
			} else {
				fmt.Fprintf(os.Stderr, "[WARN] could not parse integer from env var %s=%q: %v. Using default value.\n", s.env, raw, err)
			}
		}
	}
}
