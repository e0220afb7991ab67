// Package config loads the archiver's word-length profile configuration:
// a TOML file naming a default profile and a set of named word-length
// presets a user can select with --profile instead of a raw --word-length
// number.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed haf.toml
var defaultConfigData []byte

// Global state for the selected default profile.
var (
	ProfileName       string
	DefaultWordLength uint8
	OutputDir         string
	Profiles          map[string]uint8 // profile name -> word length
)

// Config represents the entire TOML configuration structure.
type Config struct {
	Default   string    `toml:"default"`
	OutputDir string    `toml:"output_dir"`
	Profile   []Profile `toml:"profile"`
}

// Profile represents one named word-length preset.
type Profile struct {
	Name       string `toml:"name"`
	WordLength uint8  `toml:"word_length"`
}

// configPath determines the config file path based on the operating system.
func configPath() (string, error) {
	var configDir string
	var err error

	switch runtime.GOOS {
	case "windows":
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "haf")
	default:
		configDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
	}

	return filepath.Join(configDir, ".haf"), nil
}

// Initialize loads and validates the configuration file, creating it from
// the embedded default if it doesn't exist yet.
func Initialize() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		configDir := filepath.Dir(path)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
		}
		if err := os.WriteFile(path, defaultConfigData, 0644); err != nil {
			return fmt.Errorf("failed to create default config file at %s: %w", path, err)
		}
	}

	var conf Config
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return fmt.Errorf("failed to parse TOML config at %s: %w", path, err)
	}

	if conf.Default == "" {
		return errors.New("`default` key is missing or empty in config")
	}

	var foundProfile *Profile
	Profiles = make(map[string]uint8, len(conf.Profile))
	for i := range conf.Profile {
		prof := &conf.Profile[i]
		if prof.WordLength == 0 {
			return fmt.Errorf("profile %q has invalid word_length: %d", prof.Name, prof.WordLength)
		}
		Profiles[prof.Name] = prof.WordLength
		if prof.Name == conf.Default {
			foundProfile = prof
		}
	}

	if foundProfile == nil {
		return fmt.Errorf("default profile %q not found in profile array", conf.Default)
	}

	ProfileName = foundProfile.Name
	DefaultWordLength = foundProfile.WordLength
	OutputDir = conf.OutputDir

	return nil
}

// WordLengthForProfile resolves a named profile to its configured word
// length. Returns an error if the profile name is not found.
func WordLengthForProfile(name string) (uint8, error) {
	w, ok := Profiles[name]
	if !ok {
		return 0, fmt.Errorf("profile %q not found in configuration", name)
	}
	return w, nil
}
