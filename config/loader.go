package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Sources names where configuration is read from
type Sources struct {
	File    string // YAML file; empty skips the file layer
	EnvFile string // dotenv file; a missing file is not an error

	// LookupEnv reads the process environment, defaults to os.LookupEnv
	LookupEnv func(string) (string, bool)

	// Override runs last, before validation (command line flags)
	Override func(*Config)
}

// Load layers defaults, the YAML file, the dotenv file, the environment and Override, then validates
// Real environment variables take precedence over dotenv entries
func Load(src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		if err := loadFile(src.File, &cfg); err != nil {
			return Config{}, err
		}
	}

	dotenv, err := readEnvFile(src.EnvFile)
	if err != nil {
		return Config{}, err
	}

	lookup := src.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	merged := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := applyEnv(&cfg, merged); err != nil {
		return Config{}, err
	}
	if src.Override != nil {
		src.Override(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile decodes a YAML file over cfg with strict field checking
func loadFile(path string, cfg *Config) error {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config format: %s (only YAML supported)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	return decodeYAML(data, cfg)
}

// decodeYAML applies one YAML document onto cfg; unknown keys are rejected
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		if strings.Contains(err.Error(), "not found") {
			return fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("config file contains multiple documents or trailing content")
	}
	return nil
}

// readEnvFile parses a dotenv file without touching the process environment
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}
