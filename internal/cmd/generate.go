package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/hargabyte/lvextract/internal/config"
	"github.com/hargabyte/lvextract/internal/pipeline"
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the functions and enums artifacts",
	Long: `Generate runs both extraction passes and writes their artifacts.

The functions pass reads the headers selected by source.function_globs and
writes one declaration per line, grouped under a "// <path>" comment per
header. The enums pass reads the headers selected by source.enum_globs and
writes one constant name per line. Each artifact starts with a fixed preamble.

Both passes complete before anything is written, and each artifact is
replaced atomically, so a failed run leaves the previous artifacts intact.

Examples:
  lvextract generate                       # Both artifacts
  lvextract generate --functions-only      # Only lv_funcs.h
  lvextract generate --base ../lvgl/src    # Override source.base
  lvextract generate --dry-run > out.txt   # Print instead of writing`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

// Command-line flags
var (
	genFunctionsOnly bool
	genEnumsOnly     bool
	genDryRun        bool
	genBase          string
	genFunctionsOut  string
	genEnumsOut      string
)

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().BoolVar(&genFunctionsOnly, "functions-only", false, "Run only the functions pass")
	generateCmd.Flags().BoolVar(&genEnumsOnly, "enums-only", false, "Run only the enums pass")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Print artifacts to stdout instead of writing them")
	generateCmd.Flags().StringVar(&genBase, "base", "", "Header tree root (overrides source.base)")
	generateCmd.Flags().StringVar(&genFunctionsOut, "functions-out", "", "Functions artifact path (overrides functions.output)")
	generateCmd.Flags().StringVar(&genEnumsOut, "enums-out", "", "Enums artifact path (overrides enums.output)")
	generateCmd.MarkFlagsMutuallyExclusive("functions-only", "enums-only")
}

// runGenerate implements the generate command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	overrides, err := absFlagPaths(genBase, genFunctionsOut, genEnumsOut)
	if err != nil {
		return err
	}

	p, err := loadPipeline(func(cfg *config.Config) {
		applyPathOverrides(cfg, overrides)
	})
	if err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		Functions: !genEnumsOnly,
		Enums:     !genFunctionsOnly,
		DryRun:    genDryRun,
		Out:       cmd.OutOrStdout(),
	}

	summary, err := p.Run(opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	if genDryRun {
		return nil
	}
	return writeReport(cmd.OutOrStdout(), summary)
}

// pathOverrides holds generate's path flags, already made absolute.
type pathOverrides struct {
	base, functionsOut, enumsOut string
}

// absFlagPaths resolves non-empty flag paths against the working directory,
// so they do not depend on where the config file was found.
func absFlagPaths(base, functionsOut, enumsOut string) (pathOverrides, error) {
	var out pathOverrides
	for _, f := range []struct {
		value string
		dst   *string
	}{
		{base, &out.base},
		{functionsOut, &out.functionsOut},
		{enumsOut, &out.enumsOut},
	} {
		if f.value == "" {
			continue
		}
		abs, err := filepath.Abs(f.value)
		if err != nil {
			return pathOverrides{}, fmt.Errorf("resolving %s: %w", f.value, err)
		}
		*f.dst = abs
	}
	return out, nil
}

func applyPathOverrides(cfg *config.Config, o pathOverrides) {
	if o.base != "" {
		cfg.Source.Base = o.base
	}
	if o.functionsOut != "" {
		cfg.Functions.Output = o.functionsOut
	}
	if o.enumsOut != "" {
		cfg.Enums.Output = o.enumsOut
	}
}
