package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI settings. Flags override the PLAYERCTL_* environment.
type Config struct {
	ServerURL string `env:"PLAYERCTL_SERVER" envDefault:"http://localhost:8080"`
	Token     string `env:"PLAYERCTL_TOKEN"`
	TokenFile string `env:"PLAYERCTL_TOKEN_FILE"`
	Output    string `env:"PLAYERCTL_OUTPUT" envDefault:"text"`
}

// DefaultConfig reads the environment. The token file defaults to
// ~/.playerctl/token.
func DefaultConfig() *Config {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		// Only string fields, so parsing cannot fail on values
		c = &Config{ServerURL: "http://localhost:8080", Output: "text"}
	}
	if c.TokenFile == "" {
		c.TokenFile = defaultTokenFile()
	}
	return c
}

// LoadToken fills Token from the token file when neither flag nor env set it.
// A missing file leaves the CLI anonymous.
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read token file: %w", err)
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken replaces the token file atomically so a concurrent playerctl
// never reads a partial token
func (c *Config) SaveToken(token string) error {
	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(token + "\n"); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save token: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.TokenFile); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	c.Token = token
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".playerctl", "token")
	}
	return filepath.Join(home, ".playerctl", "token")
}
