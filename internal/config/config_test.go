package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "lib/libesp32_lvgl/LVGL8/src", cfg.Source.Base)
	assert.Len(t, cfg.Source.FunctionGlobs, 11)
	assert.Equal(t, []string{"**/*.h"}, cfg.Source.EnumGlobs)

	assert.Equal(t, "lv_funcs.h", cfg.Functions.Output)
	assert.Len(t, cfg.Functions.ReservedPrefixes, 3)
	assert.Len(t, cfg.Functions.ExcludeNames, 16)
	assert.Equal(t, []string{"LV_ATTRIBUTE_FAST_MEM"}, cfg.Functions.StripTokens)

	assert.Equal(t, "lv_enum.h", cfg.Enums.Output)
	assert.Len(t, cfg.Enums.ExcludePrefixes, 10)

	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "empty base",
			modify:  func(c *Config) { c.Source.Base = "" },
			wantErr: true,
		},
		{
			name:    "no function globs",
			modify:  func(c *Config) { c.Source.FunctionGlobs = nil },
			wantErr: true,
		},
		{
			name:    "no enum globs",
			modify:  func(c *Config) { c.Source.EnumGlobs = nil },
			wantErr: true,
		},
		{
			name:    "missing output",
			modify:  func(c *Config) { c.Enums.Output = "" },
			wantErr: true,
		},
		{
			name:    "same output for both artifacts",
			modify:  func(c *Config) { c.Enums.Output = c.Functions.Output },
			wantErr: true,
		},
		{
			name: "empty pattern",
			modify: func(c *Config) {
				c.Enums.ExcludePrefixes = append(c.Enums.ExcludePrefixes, RuleConfig{})
			},
			wantErr: true,
		},
		{
			name: "empty strip token",
			modify: func(c *Config) {
				c.Functions.StripTokens = []string{"LV_ATTRIBUTE_FAST_MEM", ""}
			},
			wantErr: true,
		},
		{
			name: "bad name regex",
			modify: func(c *Config) {
				c.Functions.ExcludeNames = []RuleConfig{{Pattern: "^lv_("}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig), "expected ErrInvalidConfig, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	defaults := DefaultConfig()

	t.Run("empty loaded uses all defaults", func(t *testing.T) {
		merged := Merge(&Config{}, defaults)

		assert.Equal(t, defaults.Source, merged.Source)
		assert.Equal(t, defaults.Functions, merged.Functions)
		assert.Equal(t, defaults.Enums, merged.Enums)
	})

	t.Run("loaded values take precedence", func(t *testing.T) {
		loaded := &Config{
			Source: SourceConfig{Base: "vendor/lvgl/src"},
			Enums: EnumsConfig{
				ExcludePrefixes: []RuleConfig{{Pattern: "LV_OLD_"}},
			},
		}
		merged := Merge(loaded, defaults)

		assert.Equal(t, "vendor/lvgl/src", merged.Source.Base)
		assert.Equal(t, defaults.Source.FunctionGlobs, merged.Source.FunctionGlobs)
		assert.Equal(t, []RuleConfig{{Pattern: "LV_OLD_"}}, merged.Enums.ExcludePrefixes)
		assert.Equal(t, defaults.Enums.Output, merged.Enums.Output)
	})

	t.Run("explicit empty strip tokens", func(t *testing.T) {
		loaded := &Config{Functions: FunctionsConfig{StripTokens: []string{}}}
		merged := Merge(loaded, defaults)

		assert.Empty(t, merged.Functions.StripTokens)
	})

	t.Run("explicit empty rule lists disable rules", func(t *testing.T) {
		loaded := &Config{
			Functions: FunctionsConfig{ExcludeNames: []RuleConfig{}, ReservedPrefixes: []RuleConfig{}},
			Enums:     EnumsConfig{ExcludePrefixes: []RuleConfig{}},
		}
		merged := Merge(loaded, defaults)

		assert.Empty(t, merged.Functions.ExcludeNames)
		assert.Empty(t, merged.Functions.ReservedPrefixes)
		assert.Empty(t, merged.Enums.ExcludePrefixes)
		assert.Equal(t, 0, merged.EnumRules().Len())
	})
}

func TestRuleConfig_YAML(t *testing.T) {
	content := `
- "^lv_debug"
- pattern: "^lv_disp_"
  reason: display driver
`
	var rules []RuleConfig
	require.NoError(t, yaml.Unmarshal([]byte(content), &rules))

	assert.Equal(t, []RuleConfig{
		{Pattern: "^lv_debug"},
		{Pattern: "^lv_disp_", Reason: "display driver"},
	}, rules)

	out, err := yaml.Marshal(rules)
	require.NoError(t, err)
	assert.Contains(t, string(out), "- ^lv_debug\n")

	var again []RuleConfig
	require.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, rules, again)
}

func TestFindConfigDir(t *testing.T) {
	tmpDir := t.TempDir()

	projectDir := filepath.Join(tmpDir, "project")
	subDir := filepath.Join(projectDir, "subdir")
	require.NoError(t, os.MkdirAll(subDir, 0755))

	t.Run("no config dir returns error", func(t *testing.T) {
		_, err := FindConfigDir(subDir)
		assert.Error(t, err)
	})

	configDir := filepath.Join(projectDir, ConfigDirName)
	require.NoError(t, os.Mkdir(configDir, 0755))

	t.Run("finds config dir in current directory", func(t *testing.T) {
		found, err := FindConfigDir(projectDir)
		require.NoError(t, err)
		assert.Equal(t, configDir, found)
	})

	t.Run("finds config dir in parent directory", func(t *testing.T) {
		found, err := FindConfigDir(subDir)
		require.NoError(t, err)
		assert.Equal(t, configDir, found)
	})
}

func TestEnsureConfigDir(t *testing.T) {
	tmpDir := t.TempDir()
	expectedDir := filepath.Join(tmpDir, ConfigDirName)

	dir, err := EnsureConfigDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, expectedDir, dir)
	assert.DirExists(t, dir)

	dir, err = EnsureConfigDir(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, expectedDir, dir)
}

func TestLoadFromPath(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("loads valid config file", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		content := `
source:
  base: third_party/lvgl/src
  function_globs: ["core/*.h"]
functions:
  exclude_names:
    - "^lv_debug"
`
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

		cfg, err := LoadFromPath(configPath)
		require.NoError(t, err)

		assert.Equal(t, "third_party/lvgl/src", cfg.Source.Base)
		assert.Equal(t, []string{"core/*.h"}, cfg.Source.FunctionGlobs)
		assert.Equal(t, []RuleConfig{{Pattern: "^lv_debug"}}, cfg.Functions.ExcludeNames)

		// Missing values fall back to defaults
		assert.Equal(t, []string{"**/*.h"}, cfg.Source.EnumGlobs)
		assert.Equal(t, "lv_funcs.h", cfg.Functions.Output)
		assert.Equal(t, tmpDir, cfg.Root)
	})

	t.Run("returns defaults for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromPath(filepath.Join(tmpDir, "nonexistent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Source, cfg.Source)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "invalid.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: yaml: content"), 0644))

		_, err := LoadFromPath(configPath)
		assert.Error(t, err)
	})

	t.Run("returns error for invalid config values", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "bad-values.yaml")
		content := `
functions:
  exclude_names: ["(unclosed"]
`
		require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

		_, err := LoadFromPath(configPath)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("root is the project directory for .lvextract files", func(t *testing.T) {
		configDir := filepath.Join(tmpDir, "proj", ConfigDirName)
		require.NoError(t, os.MkdirAll(configDir, 0755))
		configPath := filepath.Join(configDir, ConfigFileName)
		require.NoError(t, os.WriteFile(configPath, []byte("enums:\n  output: out/enums.txt\n"), 0644))

		cfg, err := LoadFromPath(configPath)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpDir, "proj"), cfg.Root)
		assert.Equal(t, filepath.Join(tmpDir, "proj", "out", "enums.txt"), cfg.ResolvePath(cfg.Enums.Output))
	})
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("returns defaults when no config dir exists", func(t *testing.T) {
		cfg, err := Load(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Functions, cfg.Functions)
		assert.Equal(t, tmpDir, cfg.Root)
	})

	t.Run("loads saved default config", func(t *testing.T) {
		path, err := SaveDefault(tmpDir)
		require.NoError(t, err)
		assert.FileExists(t, path)

		cfg, err := Load(filepath.Join(tmpDir))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Functions, cfg.Functions)
		assert.Equal(t, DefaultConfig().Enums, cfg.Enums)

		_, err = SaveDefault(tmpDir)
		assert.Error(t, err, "second save must not overwrite")
	})
}

func TestConfig_DeclarationFilter(t *testing.T) {
	cfg := DefaultConfig()

	f, err := cfg.DeclarationFilter()
	require.NoError(t, err)
	assert.Equal(t, 3, f.Reserved.Len())
	assert.Equal(t, 16, f.Names.Len())
	assert.True(t, f.Names.Excludes("lv_debug_enable"))
	assert.False(t, f.Names.Excludes("lv_obj_create"))

	assert.True(t, cfg.EnumRules().Excludes("_LV_BAZ"))
	assert.False(t, cfg.EnumRules().Excludes("LV_ALIGN_CENTER"))
}
