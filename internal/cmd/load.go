package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/hargabyte/lvextract/internal/config"
	"github.com/hargabyte/lvextract/internal/output"
	"github.com/hargabyte/lvextract/internal/pipeline"
	"github.com/phuslu/log"
)

// loadConfig reads --config when given, otherwise walks up from the
// working directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromPath(configPath)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return config.Load(cwd)
}

// loadPipeline loads config, lets the caller adjust it, re-validates and
// compiles the pipeline.
func loadPipeline(adjust func(*config.Config)) (*pipeline.Pipeline, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if adjust != nil {
		adjust(cfg)
		if err := config.Validate(cfg); err != nil {
			return nil, err
		}
	}
	log.Debug().Str("root", cfg.Root).Str("base", cfg.ResolvePath(cfg.Source.Base)).Msg("configuration loaded")
	return pipeline.New(cfg, &log.DefaultLogger)
}

// writeReport renders v to w in the --format output format.
func writeReport(w io.Writer, v interface{}) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	formatter, err := output.GetFormatter(format)
	if err != nil {
		return err
	}
	return formatter.FormatToWriter(w, v)
}
