package main

import (
	"fmt"
	"os"

	"github.com/jvirtanen/inkscore/command"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(replayCmd)
}

var replayCmd = &cobra.Command{
	Use:   "replay <document.yaml>",
	Short: "Rebuild a score from a document and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		score := h.Score()
		fmt.Printf("revision:  %d\n", h.Revision())
		fmt.Printf("parts:     %d\n", len(score.Parts))
		fmt.Printf("measures:  %d\n", len(score.Measures))
		fmt.Printf("spanners:  %d\n", len(score.Spanners.List))
		fmt.Printf("end tick:  %d\n", score.EndTick())
		return nil
	},
}

func loadDocument(path string) (*command.History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := command.DecodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	logger.Info("replaying document", "path", path, "commands", len(doc.Commands))
	h, err := doc.Rebuild()
	if err != nil {
		return nil, fmt.Errorf("rebuilding %s: %w", path, err)
	}
	return h, nil
}
