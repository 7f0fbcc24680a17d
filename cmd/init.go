package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hyj0824/ojAssistant/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [--workdir <dir>] or init <dir>",
	Short: "Configure where your Java sources live",
	Long: `Configure the working directory and browsing preferences.

The working directory is where submissions are picked from and where
problem exports and unit tests are saved. 'oja browse' can still
override it per invocation with a positional argument.

Examples:
  oja init --workdir ~/cs109/homework
  oja init ~/cs109/homework

  # also auto-select the first course when browsing:
  oja init ~/cs109/homework --auto-course`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var workDir string
		if len(args) > 0 {
			workDir = args[0]
		} else {
			var err error
			workDir, err = cmd.Flags().GetString("workdir")
			if err != nil {
				return fmt.Errorf("failed to get workdir flag: %w", err)
			}
		}
		if workDir == "" {
			return fmt.Errorf("working directory cannot be empty. Use: oja init --workdir <dir> or oja init <dir>")
		}

		abs, err := filepath.Abs(workDir)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", workDir, err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		cfg.WorkDirectory = abs
		cfg.AutoSelectCourse, _ = cmd.Flags().GetBool("auto-course")
		cfg.AutoSelectHomework, _ = cmd.Flags().GetBool("auto-homework")

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✓ Configured!\n")
		fmt.Printf("  Working directory: %s\n", abs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("workdir", "", "Directory holding your Java sources")
	initCmd.Flags().Bool("auto-course", false, "Skip the course prompt, picking the first course")
	initCmd.Flags().Bool("auto-homework", true, "Skip the homework prompt once, picking the first homework")
}
