// Package config loads cxxbind's ambient settings: default output
// locations, log verbosity, and whether unsupported items should fail the
// run. It follows the same load order as the rest of the pack's tooling —
// a YAML file, then an optional .env, then explicit environment
// overrides.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Output struct {
		RsOut string `yaml:"rs_out"`
		CcOut string `yaml:"cc_out"`
		IrOut string `yaml:"ir_out"`
	} `yaml:"output"`
	Diagnostics struct {
		Verbose           bool `yaml:"verbose"`
		FailOnUnsupported bool `yaml:"fail_on_unsupported"`
		Color             bool `yaml:"color"`
	} `yaml:"diagnostics"`
}

// Default returns the zero-configuration settings: color auto-detection
// left on, unsupported items never fail the run, and no default output
// paths. The Output paths are only loaded; the CLI writes to the paths its
// flags name.
func Default() *Config {
	cfg := &Config{}
	cfg.Diagnostics.Color = true
	return cfg
}

// Load reads path (if it exists) and layers .env / environment overrides
// on top, in this order: YAML file, then godotenv, then explicit env vars
// win last.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	_ = godotenv.Load()
	return applyEnv(cfg), nil
}

func applyEnv(cfg *Config) *Config {
	if v := os.Getenv("CXXBIND_FAIL_ON_UNSUPPORTED"); v != "" {
		cfg.Diagnostics.FailOnUnsupported = v == "1" || v == "true"
	}
	if v := os.Getenv("CXXBIND_VERBOSE"); v != "" {
		cfg.Diagnostics.Verbose = v == "1" || v == "true"
	}
	if v := os.Getenv("CXXBIND_NO_COLOR"); v != "" {
		cfg.Diagnostics.Color = false
	}
	return cfg
}
