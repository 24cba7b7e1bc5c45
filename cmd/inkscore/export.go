package main

import (
	"os"

	"github.com/jvirtanen/inkscore/play"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <document.yaml> <out.mid>",
	Short: "Rebuild a score from a document and write it as a MIDI file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		out, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer out.Close()
		if err := play.WriteSMF(h.Score(), out); err != nil {
			return err
		}
		logger.Info("wrote midi file", "path", args[1])
		return nil
	},
}
