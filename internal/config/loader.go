package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "engine.yaml"

// Load returns the engine configuration. An explicit path must exist and
// parse. Otherwise the first readable, valid file among
// ~/.handheld/configs/engine.yaml and ./configs/engine.yaml wins, and the
// embedded defaults are used when neither is usable. Files are decoded on
// top of the defaults, so a partial file only overrides the keys it names.
func Load(path string) (EngineConfig, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return EngineConfig{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return EngineConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return cfg, nil
	}

	for _, candidate := range searchPaths() {
		data, err := os.ReadFile(candidate)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}
	return Parse(nil)
}

// Parse decodes YAML over the embedded defaults.
// Nil data yields the embedded defaults themselves.
func Parse(data []byte) (EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(defaultEngineYAML, &cfg); err != nil {
		cfg = DefaultEngineConfig()
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".handheld", "configs", configFile))
	}
	return append(paths, filepath.Join("configs", configFile))
}
