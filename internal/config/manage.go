package config

import (
	"fmt"
	"strconv"
)

// KeyInfo describes a config key for display purposes.
type KeyInfo struct {
	Key    string
	EnvVar string
	Value  string
}

// ShowAll returns all non-secret config key/value pairs from cfg.
func ShowAll(cfg Config) []KeyInfo {
	var result []KeyInfo
	for _, s := range specs {
		if s.secret {
			continue
		}
		result = append(result, KeyInfo{
			Key:    s.key,
			EnvVar: s.env,
			Value:  fmt.Sprintf("%v", s.extract(cfg)),
		})
	}
	return result
}

// SecretStatus reports, per secret key, whether cfg carries a value.
func SecretStatus(cfg Config) map[string]bool {
	out := make(map[string]bool)
	for _, s := range specs {
		if s.secret {
			out[s.key] = s.extract(cfg).(string) != ""
		}
	}
	return out
}

// SetKey writes a non-secret config key to the config file.
func (st *Store) SetKey(key, value string) error {
	s, ok := lookupSpec(key)
	if !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}
	if s.secret {
		return fmt.Errorf("cannot set secret %q via config; use set-secret or environment variable %s", key, s.env)
	}
	if _, err := parseValue(s.typ, value); err != nil {
		return fmt.Errorf("invalid %s value for %s: %w", typeName(s.typ), key, err)
	}

	b := st.backend()
	if s.typ == kInt {
		i, _ := strconv.Atoi(value)
		return b.SetInt(key, i)
	}
	return b.SetString(key, value)
}

// UnsetKey removes a key from the config file so its default applies again.
func (st *Store) UnsetKey(key string) error {
	if _, ok := lookupSpec(key); !ok {
		return fmt.Errorf("unknown config key: %q", key)
	}
	return st.backend().Delete(key)
}

// SetSecret writes a secret key to the secret store.
func (st *Store) SetSecret(key, value string) error {
	s, ok := lookupSpec(key)
	if !ok || !s.secret {
		return fmt.Errorf("unknown secret key: %q", key)
	}
	if value == "" {
		return fmt.Errorf("empty value for %s", key)
	}
	return st.secrets().Set(secretService, s.account(), value)
}

// ValidKeys returns the list of valid non-secret config key names.
func ValidKeys() []string {
	var keys []string
	for _, s := range specs {
		if !s.secret {
			keys = append(keys, s.key)
		}
	}
	return keys
}

// SecretKeys returns the names of the secret keys.
func SecretKeys() []string {
	var keys []string
	for _, s := range specs {
		if s.secret {
			keys = append(keys, s.key)
		}
	}
	return keys
}
