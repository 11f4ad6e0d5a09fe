// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"

	"github.com/staranto/ghorg/internal/nested"
)

// FileName is the config file looked up in the standard locations.
const FileName = "ghorg.yaml"

var (
	ErrNotFound    = errors.New("config file not found")
	ErrNotAString  = errors.New("value is not a string")
	ErrNotAnInt    = errors.New("value is not an int")
	ErrNotABoolean = errors.New("value is not a bool")
	ErrNotAList    = errors.New("value is not a list of strings")
)

type Type struct {
	Source string
	// Namespace, when set, is tried as a prefix before the bare key. Commands
	// use their own name so that repos.output beats output.
	Namespace string
	Data      map[string]any
}

var Config Type

// Load reads the config file and makes it the process-wide Config. The
// optional argument becomes the lookup namespace.
func Load(namespace ...string) (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]any
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	Config = Type{
		Source: path,
		Data:   data,
	}
	if len(namespace) > 0 {
		Config.Namespace = namespace[0]
	}

	return Config, nil
}

// get resolves a dotted key, trying the namespaced form first.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	var lastErr error
	for _, key := range candidateKeys {
		v, err := nested.Access(cfg.Data, nested.Split(key))
		if err == nil {
			return v, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("no valid path found among %v: %w", candidateKeys, lastErr)
}

func ensureLoaded() {
	if len(Config.Data) == 0 {
		ns := Config.Namespace
		_, _ = Load(ns)
	}
}

func GetString(key string, defaultValue ...string) (string, error) {
	ensureLoaded()

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", ErrNotAString
	}

	return s, nil
}

func GetInt(key string, defaultValue ...int) (int, error) {
	ensureLoaded()

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	// YAML numbers may be unmarshaled as int/float64 depending on content.
	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, ErrNotAnInt
	}
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	ensureLoaded()

	val, err := Config.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, ErrNotABoolean
	}
	return b, nil
}

// GetStringSlice returns a list of strings. A single string is a one element
// list.
func GetStringSlice(key string) ([]string, error) {
	ensureLoaded()

	val, err := Config.get(key)
	if err != nil {
		return nil, err
	}

	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, ErrNotAList
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, ErrNotAList
	}
}

func getConfigPath() (string, error) {
	if p, ok := os.LookupEnv("GHORG_CFG"); ok && p != "" {
		info, err := os.Stat(p)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		if info.IsDir() {
			return "", fmt.Errorf("GHORG_CFG points to a directory: %s", p)
		}
		return p, nil
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
	return "", fmt.Errorf("%w in standard locations", ErrNotFound)
}
