package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files [functions|enums]",
	Short: "List the headers each pass reads",
	Long: `List the headers selected by source.function_globs and source.enum_globs,
in the order the passes read them. Paths are shown relative to the project
root, as they appear in the functions artifact.

Examples:
  lvextract files              # Both lists
  lvextract files functions    # Only the functions pass
  lvextract files enums --format json`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"functions", "enums"},
	RunE:      runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
}

// fileLists is the files command report.
type fileLists struct {
	Functions []string `yaml:"functions,omitempty" json:"functions,omitempty"`
	Enums     []string `yaml:"enums,omitempty" json:"enums,omitempty"`
}

func runFiles(cmd *cobra.Command, args []string) error {
	which := ""
	if len(args) == 1 {
		which = args[0]
		if which != "functions" && which != "enums" {
			return fmt.Errorf("unknown pass %q (expected functions or enums)", which)
		}
	}

	p, err := loadPipeline(nil)
	if err != nil {
		return err
	}

	var report fileLists
	if which == "" || which == "functions" {
		paths, err := p.FunctionFiles()
		if err != nil {
			return err
		}
		for _, path := range paths {
			report.Functions = append(report.Functions, p.DisplayPath(path))
		}
	}
	if which == "" || which == "enums" {
		paths, err := p.EnumFiles()
		if err != nil {
			return err
		}
		for _, path := range paths {
			report.Enums = append(report.Enums, p.DisplayPath(path))
		}
	}

	return writeReport(cmd.OutOrStdout(), report)
}
