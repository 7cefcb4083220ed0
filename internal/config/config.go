package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the lvextract configuration file
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the lvextract configuration directory
const ConfigDirName = ".lvextract"

// Config holds all lvextract configuration
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Functions FunctionsConfig `yaml:"functions"`
	Enums     EnumsConfig     `yaml:"enums"`

	// Root is the directory relative paths are resolved against. It is the
	// directory holding .lvextract, or the working directory for defaults.
	Root string `yaml:"-"`
}

// SourceConfig selects the header files read by each pass
type SourceConfig struct {
	Base          string   `yaml:"base"`
	FunctionGlobs []string `yaml:"function_globs"`
	EnumGlobs     []string `yaml:"enum_globs"`
}

// FunctionsConfig holds settings for the function declaration pass
type FunctionsConfig struct {
	Output           string       `yaml:"output"`
	ReservedPrefixes []RuleConfig `yaml:"reserved_prefixes"`
	ExcludeNames     []RuleConfig `yaml:"exclude_names"`
	StripTokens      []string     `yaml:"strip_tokens"`
}

// EnumsConfig holds settings for the enum constant pass
type EnumsConfig struct {
	Output          string       `yaml:"output"`
	ExcludePrefixes []RuleConfig `yaml:"exclude_prefixes"`
}

// RuleConfig is one exclusion pattern with an optional reason. In YAML it is
// either a plain string or a mapping with pattern and reason keys.
type RuleConfig struct {
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (r *RuleConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Pattern = value.Value
		r.Reason = ""
		return nil
	}
	type plain RuleConfig
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = RuleConfig(p)
	return nil
}

// MarshalYAML writes rules without a reason as plain strings.
func (r RuleConfig) MarshalYAML() (interface{}, error) {
	if r.Reason == "" {
		return r.Pattern, nil
	}
	type plain RuleConfig
	return plain(r), nil
}

// ErrConfigNotFound is returned when no config file can be found
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads config from .lvextract/config.yaml, falling back to defaults.
// It searches for the config directory starting from workDir and walking up
// the directory tree. If no config is found, returns defaults rooted at workDir.
func Load(workDir string) (*Config, error) {
	configDir, err := FindConfigDir(workDir)
	if err != nil {
		absDir, absErr := filepath.Abs(workDir)
		if absErr != nil {
			return nil, fmt.Errorf("resolving path: %w", absErr)
		}
		cfg := DefaultConfig()
		cfg.Root = absDir
		return cfg, nil
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	return LoadFromPath(configPath)
}

// LoadFromPath reads config from a specific path.
// Merges loaded config with defaults and validates the result.
func LoadFromPath(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	root := filepath.Dir(absPath)
	if filepath.Base(root) == ConfigDirName {
		root = filepath.Dir(root)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.Root = root
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())
	merged.Root = root

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigDir locates the .lvextract directory by walking up from startDir.
// Returns the path to the .lvextract directory if found.
func FindConfigDir(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	currentDir := absDir
	for {
		configDir := filepath.Join(currentDir, ConfigDirName)
		info, err := os.Stat(configDir)
		if err == nil && info.IsDir() {
			return configDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", ErrConfigNotFound
		}
		currentDir = parentDir
	}
}

// EnsureConfigDir creates the .lvextract directory if it doesn't exist.
// Returns the path to the .lvextract directory.
func EnsureConfigDir(workDir string) (string, error) {
	absDir, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	configDir := filepath.Join(absDir, ConfigDirName)

	info, err := os.Stat(configDir)
	if err == nil {
		if info.IsDir() {
			return configDir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", configDir)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return configDir, nil
}

// Validate checks that config values are valid.
// Returns an error if validation fails.
func Validate(cfg *Config) error {
	if cfg.Source.Base == "" {
		return fmt.Errorf("%w: source.base must be set", ErrInvalidConfig)
	}
	if len(cfg.Source.FunctionGlobs) == 0 {
		return fmt.Errorf("%w: source.function_globs must not be empty", ErrInvalidConfig)
	}
	if len(cfg.Source.EnumGlobs) == 0 {
		return fmt.Errorf("%w: source.enum_globs must not be empty", ErrInvalidConfig)
	}

	if cfg.Functions.Output == "" || cfg.Enums.Output == "" {
		return fmt.Errorf("%w: functions.output and enums.output must be set", ErrInvalidConfig)
	}
	if cfg.ResolvePath(cfg.Functions.Output) == cfg.ResolvePath(cfg.Enums.Output) {
		return fmt.Errorf("%w: functions.output and enums.output must differ, both are %q",
			ErrInvalidConfig, cfg.Functions.Output)
	}

	for _, group := range []struct {
		key   string
		rules []RuleConfig
	}{
		{"functions.reserved_prefixes", cfg.Functions.ReservedPrefixes},
		{"functions.exclude_names", cfg.Functions.ExcludeNames},
		{"enums.exclude_prefixes", cfg.Enums.ExcludePrefixes},
	} {
		for i, r := range group.rules {
			if r.Pattern == "" {
				return fmt.Errorf("%w: %s[%d] has an empty pattern", ErrInvalidConfig, group.key, i)
			}
		}
	}

	for i, token := range cfg.Functions.StripTokens {
		if strings.TrimSpace(token) == "" {
			return fmt.Errorf("%w: functions.strip_tokens[%d] is empty", ErrInvalidConfig, i)
		}
	}

	if _, err := cfg.NameRules(); err != nil {
		return fmt.Errorf("%w: functions.exclude_names: %v", ErrInvalidConfig, err)
	}

	return nil
}

// ResolvePath returns p unchanged when absolute, otherwise joined to Root.
func (c *Config) ResolvePath(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// SaveDefault writes the default configuration to .lvextract/config.yaml in workDir.
// Creates the .lvextract directory if it doesn't exist.
func SaveDefault(workDir string) (string, error) {
	configDir, err := EnsureConfigDir(workDir)
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists: %s", configPath)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# lvextract configuration\n# Relative paths are resolved against the directory holding .lvextract/\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}
