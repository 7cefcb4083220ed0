// Package cmd contains all CLI commands for lvextract.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hargabyte/lvextract/internal/config"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of lvextract
	Version = "0.1.0"

	// Global flags
	verbose      bool
	logLevel     string
	configPath   string
	forAgents    bool
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lvextract",
	Short: "Extract LVGL function and enum lists for binding generation",
	Long: `lvextract reads the LVGL header tree and writes two flat artifacts for the
binding generator: a list of function declarations (lv_funcs.h) and a list of
enum constant names (lv_enum.h).

Headers are cleaned lexically rather than parsed: comments are masked,
continuation lines joined, preprocessor directives dropped and brace blocks
collapsed, after which declarations are matched by pattern and filtered by
ordered exclusion rules from the configuration.

Configuration:
  .lvextract/config.yaml is looked up from the current directory upwards.
  Run 'lvextract init' to write the defaults.

Examples:
  lvextract generate                 # Write lv_funcs.h and lv_enum.h
  lvextract generate --dry-run       # Print artifacts instead of writing them
  lvextract files functions          # List headers read by the functions pass
  lvextract show src/core/lv_obj.h   # Inspect one header
  lvextract check                    # Re-parse lv_funcs.h with tree-sitter

See 'lvextract <command> --help' for command-specific options.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace|debug|info|warn|error), overrides --verbose")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .lvextract/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "yaml", "Report format (yaml|json)")
	rootCmd.Flags().BoolVar(&forAgents, "for-agents", false, "Output machine-readable capability discovery JSON")

	// Set custom help function to intercept --for-agents flag
	originalHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if forAgents {
			outputAgentHelp(cmd)
			return
		}
		originalHelp(cmd, args)
	})
}

// setupLogging configures the default logger on stderr. Artifacts and
// reports go to stdout, so logs never mix with them.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	if logLevel != "" {
		switch strings.ToLower(logLevel) {
		case "trace", "debug", "info", "warn", "error":
			level = log.ParseLevel(strings.ToLower(logLevel))
		default:
			return fmt.Errorf("invalid log level: %q", logLevel)
		}
	}

	log.DefaultLogger = log.Logger{
		Level: level,
		Writer: &log.ConsoleWriter{
			Writer:      os.Stderr,
			ColorOutput: log.IsTerminal(os.Stderr.Fd()),
		},
	}
	return nil
}

// commandInfo describes one command in the --for-agents listing.
type commandInfo struct {
	Name        string        `yaml:"name" json:"name"`
	Description string        `yaml:"description" json:"description"`
	Usage       string        `yaml:"usage" json:"usage"`
	Args        []string      `yaml:"args,omitempty" json:"args,omitempty"`
	Flags       []flagInfo    `yaml:"flags,omitempty" json:"flags,omitempty"`
	Subcommands []commandInfo `yaml:"subcommands,omitempty" json:"subcommands,omitempty"`
}

// flagInfo describes one flag in the --for-agents listing.
type flagInfo struct {
	Name        string `yaml:"name" json:"name"`
	Shorthand   string `yaml:"shorthand,omitempty" json:"shorthand,omitempty"`
	Description string `yaml:"description" json:"description"`
	Type        string `yaml:"type" json:"type"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
}

// capabilities is the --for-agents document.
type capabilities struct {
	Version     string        `yaml:"version" json:"version"`
	ConfigFile  string        `yaml:"config_file" json:"config_file"`
	Commands    []commandInfo `yaml:"commands" json:"commands"`
	GlobalFlags []flagInfo    `yaml:"global_flags" json:"global_flags"`
}

// outputAgentHelp writes a machine-readable description of every command.
// JSON is used unless --format asks for yaml explicitly.
func outputAgentHelp(cmd *cobra.Command) {
	root := buildCommandInfo(cmd.Root())
	doc := capabilities{
		Version:     Version,
		ConfigFile:  config.ConfigDirName + "/" + config.ConfigFileName,
		Commands:    root.Subcommands,
		GlobalFlags: collectFlags(cmd.Root().PersistentFlags()),
	}

	if cmd.Root().PersistentFlags().Changed("format") {
		if err := writeReport(cmd.OutOrStdout(), doc); err == nil {
			return
		}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	_ = enc.Encode(doc)
}

// buildCommandInfo walks the command tree below cmd.
func buildCommandInfo(cmd *cobra.Command) commandInfo {
	info := commandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Usage:       cmd.UseLine(),
		Args:        cmd.ValidArgs,
		Flags:       collectFlags(cmd.LocalNonPersistentFlags()),
	}
	for _, sub := range cmd.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		info.Subcommands = append(info.Subcommands, buildCommandInfo(sub))
	}
	return info
}

func collectFlags(flags *pflag.FlagSet) []flagInfo {
	var out []flagInfo
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		out = append(out, flagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Description: f.Usage,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
		})
	})
	return out
}
