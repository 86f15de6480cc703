package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/serialcheck/internal/branding"
	"github.com/agentx-labs/serialcheck/internal/codec"
	"github.com/agentx-labs/serialcheck/internal/digest"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Each is also read from SERIALCHECK_<KEY>.
const (
	KeyResultsDir = "results_dir"
	KeyHash       = "hash"
	KeyProtocol   = "protocol"
	KeyPlatform   = "platform"
)

// Settings is the resolved configuration for one run.
type Settings struct {
	ResultsDir string
	Hash       digest.Algorithm
	Protocol   int
	// Platform overrides the detected platform descriptor when non-empty.
	Platform string
}

// Dir returns the path to the config directory (~/.serialcheck/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.serialcheck/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyResultsDir, ".")
	viper.SetDefault(KeyHash, string(digest.Default))
	viper.SetDefault(KeyProtocol, codec.HighestProtocol)
	viper.SetDefault(KeyPlatform, "")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Current resolves and validates the settings for this run.
func Current() (Settings, error) {
	alg, err := digest.Parse(viper.GetString(KeyHash))
	if err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", KeyHash, err)
	}

	protocol := viper.GetInt(KeyProtocol)
	if !codec.ValidProtocol(protocol) {
		return Settings{}, fmt.Errorf("config %s: %w: %q", KeyProtocol, codec.ErrUnknownProtocol, viper.GetString(KeyProtocol))
	}

	dir := viper.GetString(KeyResultsDir)
	if dir == "" {
		dir = "."
	}

	return Settings{
		ResultsDir: dir,
		Hash:       alg,
		Protocol:   protocol,
		Platform:   viper.GetString(KeyPlatform),
	}, nil
}
