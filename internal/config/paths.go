package config

import (
	"os"
	"path/filepath"
)

const appDir = "qgen"

// Paths locates the config file and the secret store.
type Paths struct {
	ConfigFile  string
	SecretsFile string
}

// DefaultPaths resolves the XDG locations, falling back to ~/.config and
// ~/.local/share.
func DefaultPaths() Paths {
	return Paths{
		ConfigFile:  filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), appDir, "config.json"),
		SecretsFile: filepath.Join(xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share")), appDir, "secrets.json"),
	}
}

func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, fallback)
	}
	return "."
}
