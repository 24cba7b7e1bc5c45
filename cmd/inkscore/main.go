package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var logger *slog.Logger

var rootCmd = &cobra.Command{
	Use:   "inkscore",
	Short: "Inspect and convert inkscore command-log documents",
	Long: `inkscore rebuilds scores from command-log documents and converts
them to MIDI or a layout geometry dump.`,
}

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	cobra.CheckErr(rootCmd.Execute())
}
