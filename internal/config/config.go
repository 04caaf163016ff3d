// SPDX-License-Identifier: MIT

// Package config loads the optional invcache.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the standard locations.
const FileName = "invcache.yaml"

// EnvFile names an explicit config file that overrides the search.
const EnvFile = "INVCACHE_CFG"

var (
	// ErrNotFound is returned by Load when no config file exists.
	ErrNotFound = errors.New("config: config file not found")

	// ErrNoKey is returned when a dotted key does not resolve.
	ErrNoKey = errors.New("config: no such key")

	// ErrType is returned when a key resolves to a value of the wrong type.
	ErrType = errors.New("config: unexpected value type")
)

// Type is a parsed config file.
type Type struct {
	Source string
	Data   map[string]interface{}
}

// Load finds and parses the config file.
func Load() (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	return LoadFile(path)
}

// LoadFile parses the YAML file at path. An empty file yields empty Data.
func LoadFile(path string) (Type, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, fmt.Errorf("config: %w", err)
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return Type{Source: path, Data: data}, nil
}

// get traverses the map using a dotted key path.
func (cfg Type) get(kspec string) (any, error) {
	var current interface{} = cfg.Data
	for _, key := range strings.Split(kspec, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %w", kspec, ErrNoKey)
		}
		if current, ok = m[key]; !ok {
			return nil, fmt.Errorf("%s: %w", kspec, ErrNoKey)
		}
	}

	return current, nil
}

// GetString returns the string at key, or defaultValue when the key is
// missing and a default is given.
func (cfg Type) GetString(key string, defaultValue ...string) (string, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrType)
	}

	return s, nil
}

// GetFloat returns the number at key. YAML integers are widened.
func (cfg Type) GetFloat(key string, defaultValue ...float64) (float64, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%s: %w", key, ErrType)
	}
}

// GetBool returns the boolean at key.
func (cfg Type) GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("%s: %w", key, ErrType)
	}

	return b, nil
}

func getConfigPath() (string, error) {
	if explicit := os.Getenv(EnvFile); explicit != "" {
		if fileInfo, err := os.Stat(explicit); err == nil && !fileInfo.IsDir() {
			log.Debugf("using config file: %s", explicit)
			return explicit, nil
		}
		return "", fmt.Errorf("%s=%s: %w", EnvFile, explicit, ErrNotFound)
	}

	candidates := []string{
		os.Getenv("XDG_CONFIG_HOME"),
		os.Getenv("APPDATA"),
		os.Getenv("HOME"),
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		file := filepath.Join(c, FileName)
		if fileInfo, err := os.Stat(file); err == nil && !fileInfo.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, nil
		}
	}

	return "", ErrNotFound
}
