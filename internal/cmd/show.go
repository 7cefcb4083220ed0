package cmd

import (
	"fmt"
	"os"

	"github.com/hargabyte/lvextract/internal/extract"
	"github.com/hargabyte/lvextract/internal/pipeline"
	"github.com/hargabyte/lvextract/internal/source"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <header>",
	Short: "Show what the passes extract from one header",
	Long: `Run a single header through both passes and report every declaration and
enum constant found, together with the ones the exclusion rules dropped and
the rule responsible.

With --stage, print the intermediate text instead: "normalized" is the text
after comment, directive and blank line removal, "collapsed" is the text
after every brace block has been reduced to ";".

The header does not need to match the configured globs.

Examples:
  lvextract show src/core/lv_obj.h
  lvextract show src/core/lv_obj.h --format json
  lvextract show src/core/lv_obj.h --stage collapsed`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showStage string

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVar(&showStage, "stage", "", "Print intermediate text (normalized|collapsed)")
}

// headerReport is the show command report.
type headerReport struct {
	File           string                `yaml:"file" json:"file"`
	Declarations   []extract.Declaration `yaml:"declarations" json:"declarations"`
	Excluded       []pipeline.Exclusion  `yaml:"excluded,omitempty" json:"excluded,omitempty"`
	Enums          []string              `yaml:"enums,omitempty" json:"enums,omitempty"`
	ExcludedEnums  []pipeline.Exclusion  `yaml:"excluded_enums,omitempty" json:"excluded_enums,omitempty"`
	CollapsePasses int                   `yaml:"collapse_passes" json:"collapse_passes"`
}

func runShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return &pipeline.FileReadError{Path: args[0], Err: err}
	}
	raw := string(data)

	switch showStage {
	case "":
	case "normalized":
		fmt.Fprintln(cmd.OutOrStdout(), source.Normalize(raw))
		return nil
	case "collapsed":
		collapsed, _ := source.CollapseCount(source.Normalize(raw))
		fmt.Fprintln(cmd.OutOrStdout(), collapsed)
		return nil
	default:
		return fmt.Errorf("unknown stage %q (expected normalized or collapsed)", showStage)
	}

	p, err := loadPipeline(nil)
	if err != nil {
		return err
	}

	report := headerReport{File: args[0]}
	_, report.CollapsePasses = source.CollapseCount(source.Normalize(raw))
	report.Declarations, report.Excluded = p.AnalyzeDeclarations(raw)
	report.Enums, report.ExcludedEnums = p.AnalyzeEnums(raw)
	if report.Declarations == nil {
		report.Declarations = []extract.Declaration{}
	}

	return writeReport(cmd.OutOrStdout(), report)
}
