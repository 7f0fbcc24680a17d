package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/hyj0824/ojAssistant/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "oja",
	Short: "Browse and submit SUSTech OJ homework from your terminal",
	Long: `ojAssistant - a terminal client for the SUSTech CSE online judge

Log in once through your CAS account, then browse courses, homeworks and
problems, and submit Java solutions without leaving your editor.

Quick Start:
  1. Authenticate:        oja login
  2. Pick your workdir:   oja init --workdir ~/cs109/hw
  3. Browse and submit:   oja browse`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})))
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log protocol steps and poll attempts")
	config.Init()
}
