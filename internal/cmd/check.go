package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hargabyte/lvextract/internal/parser"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [artifact]",
	Short: "Parse a functions artifact with a real C grammar",
	Long: `Check parses every declaration line of a functions artifact with the
tree-sitter C grammar and reports lines that are not a single, well-formed
function prototype, as well as function names declared more than once.

Comment and blank lines are skipped. Without an argument the configured
functions.output is checked.

The extraction passes are lexical, so this is the way to catch a declaration
that a macro or an unusual header layout has mangled.

Examples:
  lvextract check                   # Check the configured artifact
  lvextract check build/lv_funcs.h  # Check a specific file
  lvextract check --strict          # Exit non-zero on any problem`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

var checkStrict bool

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail when any problem is found")
}

// lineProblem is one rejected artifact line.
type lineProblem struct {
	Line    int    `yaml:"line" json:"line"`
	Text    string `yaml:"text" json:"text"`
	Problem string `yaml:"problem" json:"problem"`
}

// checkReport is the check command report.
type checkReport struct {
	Artifact     string         `yaml:"artifact" json:"artifact"`
	Declarations int            `yaml:"declarations" json:"declarations"`
	Problems     []lineProblem  `yaml:"problems,omitempty" json:"problems,omitempty"`
	Duplicates   map[string]int `yaml:"duplicates,omitempty" json:"duplicates,omitempty"`
}

func (r *checkReport) failed() bool {
	return len(r.Problems) > 0 || len(r.Duplicates) > 0
}

func runCheck(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		path = cfg.ResolvePath(cfg.Functions.Output)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening artifact: %w", err)
	}
	defer f.Close()

	p, err := parser.NewParser()
	if err != nil {
		return err
	}
	defer p.Close()

	report, err := checkArtifact(cmd.Context(), p, f)
	if err != nil {
		return err
	}
	report.Artifact = path

	if err := writeReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}
	if checkStrict && report.failed() {
		return fmt.Errorf("%s: %d malformed lines, %d duplicate names", path, len(report.Problems), len(report.Duplicates))
	}
	return nil
}

// checkArtifact parses each declaration line read from r.
func checkArtifact(ctx context.Context, p *parser.Parser, r io.Reader) (*checkReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	report := &checkReport{}
	seen := make(map[string]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		report.Declarations++
		res, err := p.CheckDeclaration(ctx, line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !res.OK() {
			log.Debug().Int("line", lineNo).Str("problem", res.Problem).Msg("rejected declaration")
			report.Problems = append(report.Problems, lineProblem{Line: lineNo, Text: line, Problem: res.Problem})
		}
		if res.Name != "" {
			seen[res.Name]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	for name, n := range seen {
		if n > 1 {
			if report.Duplicates == nil {
				report.Duplicates = make(map[string]int)
			}
			report.Duplicates[name] = n
		}
	}
	return report, nil
}
