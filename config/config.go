// Package config loads existgen.yaml project configuration.
//
// Settings are resolved in increasing precedence: built-in defaults, the
// nearest existgen.yaml found walking up from the working directory, then
// EXISTGEN_* environment variables (EXISTGEN_LINT_MIN_SEVERITY for
// lint.min_severity). Command-line flags override all of them.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
	"github.com/lex00/existential-go/render"
)

// ConfigFilename is the standard name for existgen configuration files.
const ConfigFilename = "existgen.yaml"

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "EXISTGEN"

// Config is the existgen project configuration.
type Config struct {
	// OutputSuffix is appended to a source file's base name to name its
	// generated file.
	OutputSuffix string `yaml:"output_suffix" mapstructure:"output_suffix"`
	// RuntimeImport is the import path of the runtime support package.
	RuntimeImport string `yaml:"runtime_import" mapstructure:"runtime_import"`
	// SkipTests excludes _test.go files from directory walks.
	SkipTests bool `yaml:"skip_tests" mapstructure:"skip_tests"`
	// ExcludeDirs lists directory names never walked.
	ExcludeDirs []string   `yaml:"exclude_dirs,omitempty" mapstructure:"exclude_dirs"`
	Lint        LintConfig `yaml:"lint" mapstructure:"lint"`
}

// LintConfig represents linting-related configuration.
type LintConfig struct {
	DisabledRules []string `yaml:"disabled_rules,omitempty" mapstructure:"disabled_rules"`
	MinSeverity   string   `yaml:"min_severity" mapstructure:"min_severity"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output_suffix", render.DefaultSuffix)
	v.SetDefault("runtime_import", expand.DefaultRuntimePackage)
	v.SetDefault("skip_tests", true)
	v.SetDefault("exclude_dirs", []string{"testdata"})
	v.SetDefault("lint.disabled_rules", []string{})
	v.SetDefault("lint.min_severity", "info")
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg, err := unmarshal(newViper())
	if err != nil {
		// Defaults always decode.
		panic(err)
	}
	return cfg
}

// ParseOptions returns the directory walk options for cfg.
func (c *Config) ParseOptions() xast.ParseOptions {
	opts := xast.DefaultParseOptions()
	opts.SkipTests = c.SkipTests
	opts.ExcludeDirs = append([]string(nil), c.ExcludeDirs...)
	return opts
}

// LoadConfig loads from the current directory, walking up to find
// existgen.yaml. The returned path is empty when no file was found.
func LoadConfig() (*Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", errors.Wrap(err, "getting current directory")
	}
	return LoadConfigFrom(cwd)
}

// LoadConfigFrom loads starting from the specified directory, walking up
// the tree.
func LoadConfigFrom(startDir string) (*Config, string, error) {
	path, err := FindConfig(startDir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		cfg, err := unmarshal(newViper())
		return cfg, "", err
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// FindConfig returns the nearest existgen.yaml at or above startDir, or ""
// if there is none.
func FindConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.Wrap(err, "resolving absolute path")
	}
	for {
		candidate := filepath.Join(dir, ConfigFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadConfigFile loads from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	cfg, err := unmarshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	return cfg, nil
}

// SaveConfigTo writes cfg as YAML to path.
func SaveConfigTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config to YAML")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	return &cfg, nil
}
