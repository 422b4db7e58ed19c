package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds per-user defaults, loaded from a .dlgraph.toml file. Flags
// always win over config values; config values win over built-in defaults.
type Config struct {
	// Game selects the serialization variant: "k1" or "k2".
	Game string `toml:"game"`
	// UseDeprecated writes deprecated legacy fields when dismantling.
	UseDeprecated bool `toml:"use_deprecated"`
	// StoryName is the default Twine story name for exports.
	StoryName string `toml:"story_name"`
	// ServeAddr is the default listen address for the preview server.
	ServeAddr string `toml:"serve_addr"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Game:      "k2",
		ServeAddr: "localhost:8642",
	}
}

// loadConfig reads the first .dlgraph.toml found in the working directory or
// the user's home directory. A missing file is not an error; a malformed one
// is, so typos do not silently fall back to defaults.
func loadConfig() (Config, error) {
	cfg := defaultConfig()

	for _, dir := range configDirs() {
		path := filepath.Join(dir, "."+appName+".toml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return cfg, nil
}

func configDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}
