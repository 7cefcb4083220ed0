package pipeline

import (
	"fmt"
	"io"

	"github.com/hargabyte/lvextract/internal/artifact"
)

// RunOptions selects which passes run and where their artifacts go.
type RunOptions struct {
	Functions bool
	Enums     bool
	// DryRun renders artifacts to Out instead of their configured paths.
	DryRun bool
	Out    io.Writer
}

// PassSummary describes one pass of a run.
type PassSummary struct {
	Output  string `yaml:"output" json:"output"`
	Written bool   `yaml:"written" json:"written"`
	Stats   Stats  `yaml:"stats" json:"stats"`
}

// Summary describes a whole run.
type Summary struct {
	Functions *PassSummary `yaml:"functions,omitempty" json:"functions,omitempty"`
	Enums     *PassSummary `yaml:"enums,omitempty" json:"enums,omitempty"`
}

// Run executes the selected passes in order (functions, then enums) before
// writing anything. Every artifact is then rendered to a temporary file beside
// its destination, and only when all of them are staged are they renamed into
// place. A failing pass or render leaves every artifact as it was. The renames
// themselves are not one transaction: should a later rename fail after an
// earlier one succeeded, the earlier artifact has already been replaced.
func (p *Pipeline) Run(opts RunOptions) (*Summary, error) {
	type pending struct {
		summary *PassSummary
		art     *artifact.Artifact
	}
	var jobs []pending
	summary := &Summary{}

	if opts.Functions {
		res, err := p.Functions()
		if err != nil {
			return nil, fmt.Errorf("functions pass: %w", err)
		}
		summary.Functions = &PassSummary{Output: p.cfg.ResolvePath(p.cfg.Functions.Output), Stats: res.Stats}
		jobs = append(jobs, pending{summary.Functions, FunctionsArtifact(res)})
	}

	if opts.Enums {
		res, err := p.Enums()
		if err != nil {
			return nil, fmt.Errorf("enums pass: %w", err)
		}
		summary.Enums = &PassSummary{Output: p.cfg.ResolvePath(p.cfg.Enums.Output), Stats: res.Stats}
		jobs = append(jobs, pending{summary.Enums, artifact.NewEnums(res.Constants)})
	}

	if opts.DryRun {
		if opts.Out == nil {
			return summary, nil
		}
		for _, job := range jobs {
			if err := job.art.Render(opts.Out); err != nil {
				return nil, fmt.Errorf("rendering %s: %w", job.summary.Output, err)
			}
		}
		return summary, nil
	}

	staged := make([]*artifact.Staged, 0, len(jobs))
	for _, job := range jobs {
		s, err := artifact.NewWriter(job.summary.Output).Stage(job.art)
		if err != nil {
			for _, prev := range staged {
				prev.Discard()
			}
			return nil, err
		}
		staged = append(staged, s)
	}

	for i, job := range jobs {
		if err := staged[i].Commit(); err != nil {
			for _, rest := range staged[i+1:] {
				rest.Discard()
			}
			return nil, err
		}
		job.summary.Written = true
		p.logger.Info().Str("path", job.summary.Output).Int("lines", job.art.LineCount()).Msg("artifact written")
	}

	return summary, nil
}

// FunctionsArtifact lays out a functions pass result as an artifact, one
// section per header in pass order.
func FunctionsArtifact(res *FunctionsResult) *artifact.Artifact {
	sections := make([]artifact.Section, 0, len(res.Files))
	for _, f := range res.Files {
		lines := make([]string, 0, len(f.Declarations))
		for _, d := range f.Declarations {
			lines = append(lines, d.Text)
		}
		sections = append(sections, artifact.Section{Header: artifact.FileHeader(f.Path), Lines: lines})
	}
	return artifact.NewFunctions(sections)
}
