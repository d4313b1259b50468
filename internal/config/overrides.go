package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/wharflab/cheetah-lint/internal/schemas"
)

// LoadWithOverrides loads configuration for a target file path and applies
// overrides on top of every other source.
//
// Overrides use the same nested shape as the TOML config file, for example:
//
//	overrides := map[string]any{
//	  "output": map[string]any{"format": "json"},
//	  "rules":  map[string]any{"select": []any{"F"}},
//	}
//
// Precedence: defaults → config file → env → overrides. When configPath is
// empty the closest config file to targetPath is used.
func LoadWithOverrides(targetPath, configPath string, overrides map[string]any) (*Config, error) {
	if configPath == "" {
		configPath = Discover(targetPath)
	}
	return loadWithConfigPathAndOverrides(configPath, overrides)
}

func loadWithConfigPathAndOverrides(configPath string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	// 1) Defaults
	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	// 2) Config file, env, overrides
	if err := loadConfigFile(k, configPath); err != nil {
		return nil, err
	}
	if err := loadEnv(k); err != nil {
		return nil, err
	}
	if err := loadOverrides(k, overrides); err != nil {
		return nil, err
	}

	// 3) Decode and validate
	cfg, err := decodeConfig(k)
	if err != nil {
		return nil, err
	}

	cfg.ConfigFile = configPath
	return cfg, nil
}

func loadConfigFile(k *koanf.Koanf, configPath string) error {
	if configPath == "" {
		return nil
	}
	fk := koanf.New(".")
	if err := fk.Load(file.Provider(configPath), toml.Parser()); err != nil {
		return err
	}
	if err := schemas.ValidateConfig(fk.Raw()); err != nil {
		return fmt.Errorf("%s: %w", configPath, err)
	}
	return k.Merge(fk)
}

func loadEnv(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil)
}

func loadOverrides(k *koanf.Koanf, overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	return k.Load(confmap.Provider(overrides, ""), nil)
}
