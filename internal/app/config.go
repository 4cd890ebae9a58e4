package app

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "config.yaml"

// Config holds runtime wiring options for building the client.
type Config struct {
	Home        string `yaml:"-"`            // config/cache dir, e.g. $HOME/.sealchat
	BackendURL  string `yaml:"backend_url"`  // chat backend base URL
	UserID      string `yaml:"user_id"`      // authenticated participant id
	Username    string `yaml:"username"`     // directory identifier, e.g. the login email
	AccessToken string `yaml:"access_token"` // bearer token issued by the identity provider

	HTTP *http.Client `yaml:"-"` // optional; defaults to http.DefaultClient
}

// LoadConfig reads config.yaml from home when present. A missing file
// just yields defaults; flags layer on top afterwards.
func LoadConfig(home string) (Config, error) {
	cfg := Config{Home: home}
	b, err := os.ReadFile(filepath.Join(home, configFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", configFile, err)
	}
	cfg.Home = home
	return cfg, nil
}
