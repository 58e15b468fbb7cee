package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	PlayerID   string
	PlayerFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("SPLENDID_SERVER", "http://localhost:8080"),
		PlayerID:   os.Getenv("SPLENDID_PLAYER"),
		PlayerFile: getEnvOrDefault("SPLENDID_PLAYER_FILE", defaultPlayerFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadPlayerID loads the saved player id if not already set.
// The server mints an id on the first create/join, and the CLI keeps
// it so later commands act as the same player.
func (c *Config) LoadPlayerID() error {
	if c.PlayerID != "" {
		return nil
	}

	data, err := os.ReadFile(c.PlayerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No saved player is fine
		}
		return err
	}

	c.PlayerID = strings.TrimSpace(string(data))
	return nil
}

// SavePlayerID persists the player id for later commands
func (c *Config) SavePlayerID(id string) error {
	c.PlayerID = id

	dir := filepath.Dir(c.PlayerFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.PlayerFile, []byte(id), 0600)
}

func defaultPlayerFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".splendid/player"
	}
	return filepath.Join(home, ".splendid", "player")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
