package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hargabyte/lvextract/internal/config"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default .lvextract/config.yaml",
	Long: `Create .lvextract/config.yaml in the current directory, populated with the
default header globs, output paths and exclusion rules.

Edit the file to point source.base at your LVGL tree or to add exclusions.

Examples:
  lvextract init          # Write the default configuration
  lvextract init --force  # Overwrite an existing configuration`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, config.ConfigDirName, config.ConfigFileName)
	_, err = os.Stat(cfgPath)
	if err == nil {
		if !initForce {
			relPath, _ := filepath.Rel(cwd, cfgPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Already initialized at %s\n", relPath)
			return nil
		}
		if err := os.Remove(cfgPath); err != nil {
			return fmt.Errorf("removing existing config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking config path: %w", err)
	}

	written, err := config.SaveDefault(cwd)
	if err != nil {
		return err
	}

	relPath, _ := filepath.Rel(cwd, written)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", relPath)
	return nil
}
