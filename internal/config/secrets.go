package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const secretService = "qgen"

// secretStore keeps credentials in a JSON file of the form
// {service: {account: value}}, readable only by the owner.
type secretStore struct {
	fs   afero.Fs
	path string
}

func (s *Store) secrets() secretStore {
	return secretStore{fs: s.fs, path: s.paths.SecretsFile}
}

func (s secretStore) read() (map[string]map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, err
	}
	var secrets map[string]map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parsing secrets file: %w", err)
	}
	return secrets, nil
}

func (s secretStore) Get(service, account string) (string, error) {
	secrets, err := s.read()
	if err != nil {
		return "", fmt.Errorf("secret store not available: %w", err)
	}
	svc, ok := secrets[service]
	if !ok {
		return "", fmt.Errorf("service %q not found", service)
	}
	val, ok := svc[account]
	if !ok {
		return "", fmt.Errorf("account %q not found in service %q", account, service)
	}
	return val, nil
}

func (s secretStore) Set(service, account, value string) error {
	secrets, err := s.read()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("refusing to overwrite secrets file: %w", err)
	}
	if secrets == nil {
		secrets = make(map[string]map[string]string)
	}
	if secrets[service] == nil {
		secrets[service] = make(map[string]string)
	}
	secrets[service][account] = value

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating secrets dir: %w", err)
	}
	out, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(s.fs, s.path, out, 0o600)
}
