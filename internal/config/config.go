package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/julianstephens/st/internal/constants"
)

// Config holds optional per-service identifiers. Every field may be empty.
type Config struct {
	GitHubOrgID  string `toml:"github_org_id"`
	AsanaUserGID string `toml:"asana_user_gid"`
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Dir returns the directory holding the config file, used for logs as well.
func Dir(path string) string {
	return filepath.Dir(ExpandPath(path))
}

// Load reads the TOML file at path. A missing file yields an empty config and
// no error; a malformed file yields an empty config and the parse error so the
// caller can warn and carry on.
func Load(path string) (Config, error) {
	var cfg Config
	expanded := ExpandPath(path)

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return applyEnv(cfg), fmt.Errorf("failed to read %s: %w", expanded, err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return applyEnv(Config{}), fmt.Errorf("failed to parse %s: %w", expanded, err)
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := os.Getenv(constants.EnvGitHubOrgID); v != "" {
		cfg.GitHubOrgID = v
	}
	if v := os.Getenv(constants.EnvAsanaUserGID); v != "" {
		cfg.AsanaUserGID = v
	}
	return cfg
}
