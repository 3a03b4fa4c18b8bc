package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kBool
	kFloat
	kDuration
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	secret  bool
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

// account is the name a secret is stored under in the secret store.
func (s keySpec) account() string {
	return strings.ReplaceAll(s.key, ".", "_")
}

var specs = []keySpec{
	{
		key: "server.host", typ: kString, env: "QGEN_SERVER_HOST",
		apply:   func(cfg *Config, v any) { cfg.Server.Host = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.Host },
	},
	{
		key: "server.port", typ: kInt, env: "QGEN_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "log.level", typ: kString, env: "QGEN_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
	{
		key: "log.format", typ: kString, env: "QGEN_LOG_FORMAT",
		apply:   func(cfg *Config, v any) { cfg.Log.Format = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Format },
	},
	{
		key: "inference.enabled", typ: kBool, env: "QGEN_INFERENCE_ENABLED",
		apply:   func(cfg *Config, v any) { cfg.Inference.Enabled = v.(bool) },
		extract: func(cfg Config) any { return cfg.Inference.Enabled },
	},
	{
		key: "inference.base_url", typ: kString, env: "QGEN_INFERENCE_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Inference.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Inference.BaseURL },
	},
	{
		key: "inference.model", typ: kString, env: "QGEN_INFERENCE_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Inference.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Inference.Model },
	},
	{
		key: "inference.timeout", typ: kDuration, env: "QGEN_INFERENCE_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Inference.Timeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Inference.Timeout },
	},
	{
		key: "inference.max_new_tokens", typ: kInt, env: "QGEN_INFERENCE_MAX_NEW_TOKENS",
		apply:   func(cfg *Config, v any) { cfg.Inference.MaxNewTokens = v.(int) },
		extract: func(cfg Config) any { return cfg.Inference.MaxNewTokens },
	},
	{
		key: "inference.temperature", typ: kFloat, env: "QGEN_INFERENCE_TEMPERATURE",
		apply:   func(cfg *Config, v any) { cfg.Inference.Temperature = v.(float64) },
		extract: func(cfg Config) any { return cfg.Inference.Temperature },
	},
	{
		key: "inference.top_k", typ: kInt, env: "QGEN_INFERENCE_TOP_K",
		apply:   func(cfg *Config, v any) { cfg.Inference.TopK = v.(int) },
		extract: func(cfg Config) any { return cfg.Inference.TopK },
	},
	{
		key: "inference.top_p", typ: kFloat, env: "QGEN_INFERENCE_TOP_P",
		apply:   func(cfg *Config, v any) { cfg.Inference.TopP = v.(float64) },
		extract: func(cfg Config) any { return cfg.Inference.TopP },
	},
	{
		key: "inference.api_token", typ: kString, env: "QGEN_INFERENCE_API_TOKEN",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Inference.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Inference.APIToken },
	},
	{
		key: "chat.base_url", typ: kString, env: "QGEN_CHAT_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Chat.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Chat.BaseURL },
	},
	{
		key: "chat.model", typ: kString, env: "QGEN_CHAT_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Chat.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Chat.Model },
	},
	{
		key: "chat.timeout", typ: kDuration, env: "QGEN_CHAT_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Chat.Timeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Chat.Timeout },
	},
	{
		key: "chat.api_key", typ: kString, env: "QGEN_CHAT_API_KEY",
		secret:  true,
		apply:   func(cfg *Config, v any) { cfg.Chat.APIKey = v.(string) },
		extract: func(cfg Config) any { return cfg.Chat.APIKey },
	},
}

func lookupSpec(key string) (keySpec, bool) {
	for _, s := range specs {
		if s.key == key {
			return s, true
		}
	}
	return keySpec{}, false
}

// parseValue converts raw text to the Go type of a key.
func parseValue(typ keyType, raw string) (any, error) {
	switch typ {
	case kInt:
		return strconv.Atoi(raw)
	case kBool:
		return strconv.ParseBool(raw)
	case kFloat:
		return strconv.ParseFloat(raw, 64)
	case kDuration:
		return time.ParseDuration(raw)
	default:
		return raw, nil
	}
}

func typeName(typ keyType) string {
	switch typ {
	case kInt:
		return "integer"
	case kBool:
		return "bool"
	case kFloat:
		return "float"
	case kDuration:
		return "duration"
	default:
		return "string"
	}
}

func applyBackend(cfg *Config, b ConfigBackend) error {
	for _, s := range specs {
		if s.secret {
			continue
		}
		if s.typ == kInt {
			v, ok, err := b.GetInt(s.key)
			if err != nil {
				return fmt.Errorf("reading %s: %w", s.key, err)
			}
			if ok {
				s.apply(cfg, v)
			}
			continue
		}

		raw, ok, err := b.GetString(s.key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", s.key, err)
		}
		if !ok || (raw == "" && s.typ != kString) {
			continue
		}
		v, err := parseValue(s.typ, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse %s from config key %s=%q: %v. Using default value.\n", typeName(s.typ), s.key, raw, err)
			continue
		}
		s.apply(cfg, v)
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
		v, err := parseValue(s.typ, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[WARN] could not parse %s from env var %s=%q: %v. Using default value.\n", typeName(s.typ), s.env, raw, err)
			continue
		}
		s.apply(cfg, v)
	}
}
