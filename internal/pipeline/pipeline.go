// Package pipeline runs the two extraction passes over a header tree.
//
// The functions pass sends every selected header through normalization,
// brace collapsing, declaration extraction and the declaration filter. The
// enums pass sends a broader selection through normalization and enum
// extraction. Both passes are sequential and deterministic: files are read in
// sorted order and no output depends on anything but the input text.
package pipeline

import (
	"os"

	"github.com/hargabyte/lvextract/internal/config"
	"github.com/hargabyte/lvextract/internal/extract"
	"github.com/hargabyte/lvextract/internal/files"
	"github.com/hargabyte/lvextract/internal/filter"
	"github.com/hargabyte/lvextract/internal/source"
	"github.com/phuslu/log"
)

// Exclusion records a symbol dropped by a filter rule.
type Exclusion struct {
	Symbol string `yaml:"symbol" json:"symbol"`
	Stage  string `yaml:"stage" json:"stage"`
	Rule   string `yaml:"rule" json:"rule"`
}

// FileDeclarations holds the accepted declarations of one header.
type FileDeclarations struct {
	Path         string                `yaml:"path" json:"path"`
	Declarations []extract.Declaration `yaml:"declarations" json:"declarations"`
}

// Stats counts what a pass saw and kept.
type Stats struct {
	Files      int `yaml:"files" json:"files"`
	Candidates int `yaml:"candidates" json:"candidates"`
	Kept       int `yaml:"kept" json:"kept"`
	Excluded   int `yaml:"excluded" json:"excluded"`
}

// FunctionsResult is the output of the functions pass.
type FunctionsResult struct {
	Files []FileDeclarations
	Stats Stats
}

// EnumsResult is the output of the enums pass.
type EnumsResult struct {
	Constants []string
	Stats     Stats
}

// Pipeline holds the configuration and compiled rules shared by both passes.
type Pipeline struct {
	cfg       *config.Config
	logger    *log.Logger
	decls     filter.DeclarationFilter
	enumRules filter.RuleSet
}

// New compiles the filter rules in cfg. A nil logger uses log.DefaultLogger.
func New(cfg *config.Config, logger *log.Logger) (*Pipeline, error) {
	decls, err := cfg.DeclarationFilter()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &log.DefaultLogger
	}
	return &Pipeline{
		cfg:       cfg,
		logger:    logger,
		decls:     decls,
		enumRules: cfg.EnumRules(),
	}, nil
}

// Config returns the configuration the pipeline was built from.
func (p *Pipeline) Config() *config.Config {
	return p.cfg
}

// FunctionFiles resolves the sorted header list for the functions pass.
func (p *Pipeline) FunctionFiles() ([]string, error) {
	return files.List(p.cfg.ResolvePath(p.cfg.Source.Base), p.cfg.Source.FunctionGlobs)
}

// EnumFiles resolves the sorted header list for the enums pass.
func (p *Pipeline) EnumFiles() ([]string, error) {
	return files.List(p.cfg.ResolvePath(p.cfg.Source.Base), p.cfg.Source.EnumGlobs)
}

// DisplayPath is the form of path written into artifact comments.
func (p *Pipeline) DisplayPath(path string) string {
	return files.Display(p.cfg.Root, path)
}

// Functions runs the functions pass. The first unreadable file aborts it.
func (p *Pipeline) Functions() (*FunctionsResult, error) {
	paths, err := p.FunctionFiles()
	if err != nil {
		return nil, err
	}

	result := &FunctionsResult{Files: make([]FileDeclarations, 0, len(paths))}
	for _, path := range paths {
		raw, err := readSource(path)
		if err != nil {
			return nil, err
		}

		display := p.DisplayPath(path)
		kept, excluded := p.AnalyzeDeclarations(raw)
		p.logExclusions(display, excluded)
		p.logger.Debug().Str("file", display).Int("kept", len(kept)).Int("excluded", len(excluded)).Msg("scanned header")

		result.Files = append(result.Files, FileDeclarations{Path: display, Declarations: kept})
		result.Stats.Files++
		result.Stats.Candidates += len(kept) + len(excluded)
		result.Stats.Kept += len(kept)
		result.Stats.Excluded += len(excluded)
	}

	p.logger.Info().
		Int("files", result.Stats.Files).
		Int("candidates", result.Stats.Candidates).
		Int("kept", result.Stats.Kept).
		Msg("functions pass complete")
	return result, nil
}

// Enums runs the enums pass. The first unreadable file aborts it.
func (p *Pipeline) Enums() (*EnumsResult, error) {
	paths, err := p.EnumFiles()
	if err != nil {
		return nil, err
	}

	result := &EnumsResult{}
	for _, path := range paths {
		raw, err := readSource(path)
		if err != nil {
			return nil, err
		}

		display := p.DisplayPath(path)
		kept, excluded := p.AnalyzeEnums(raw)
		p.logExclusions(display, excluded)
		if len(kept)+len(excluded) > 0 {
			p.logger.Debug().Str("file", display).Int("kept", len(kept)).Int("excluded", len(excluded)).Msg("scanned enums")
		}

		result.Constants = append(result.Constants, kept...)
		result.Stats.Files++
		result.Stats.Candidates += len(kept) + len(excluded)
		result.Stats.Kept += len(kept)
		result.Stats.Excluded += len(excluded)
	}

	p.logger.Info().
		Int("files", result.Stats.Files).
		Int("candidates", result.Stats.Candidates).
		Int("kept", result.Stats.Kept).
		Msg("enums pass complete")
	return result, nil
}

// AnalyzeDeclarations runs one header's text through the functions pass and
// returns the accepted declarations and the exclusions, both in source order.
func (p *Pipeline) AnalyzeDeclarations(raw string) ([]extract.Declaration, []Exclusion) {
	collapsed := source.Collapse(source.Normalize(raw))

	var kept []extract.Declaration
	var excluded []Exclusion
	for _, d := range extract.ExtractDeclarations(collapsed, p.cfg.Functions.StripTokens) {
		v := p.decls.Check(d)
		if v.Keep {
			kept = append(kept, d)
			continue
		}
		symbol := d.Name
		if v.Stage == filter.StageReserved || symbol == "" {
			symbol = d.Text
		}
		excluded = append(excluded, Exclusion{Symbol: symbol, Stage: v.Stage.String(), Rule: v.Rule.String()})
	}
	return kept, excluded
}

// AnalyzeEnums runs one header's text through the enums pass.
func (p *Pipeline) AnalyzeEnums(raw string) ([]string, []Exclusion) {
	var kept []string
	var excluded []Exclusion
	for _, name := range extract.ExtractEnums(source.Normalize(raw)) {
		if r, ok := p.enumRules.Match(name); ok {
			excluded = append(excluded, Exclusion{Symbol: name, Stage: "prefix", Rule: r.String()})
			continue
		}
		kept = append(kept, name)
	}
	return kept, excluded
}

func (p *Pipeline) logExclusions(file string, excluded []Exclusion) {
	for _, e := range excluded {
		p.logger.Trace().Str("file", file).Str("symbol", e.Symbol).Str("stage", e.Stage).Str("rule", e.Rule).Msg("excluded")
	}
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileReadError{Path: path, Err: err}
	}
	return string(data), nil
}
