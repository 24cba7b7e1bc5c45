package main

import (
	"fmt"

	"github.com/jvirtanen/inkscore/layout"
	"github.com/spf13/cobra"
)

var pageWidth float64

func init() {
	layoutCmd.Flags().Float64Var(&pageWidth, "page-width", 800, "page width to lay out against")
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout <document.yaml>",
	Short: "Rebuild a score and dump its system/measure geometry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		constraints := layout.DefaultConstraints()
		constraints.PageWidth = pageWidth
		res := layout.Layout(h.Score(), constraints)
		for _, sys := range res.Systems {
			fmt.Printf("system %d  y=%.1f  staves=%d\n", sys.Index, sys.Y, len(sys.Staves))
			for _, mb := range sys.Measures {
				fmt.Printf("  measure %d  ticks [%d,%d)  x=%.1f  w=%.1f\n",
					mb.Index, mb.Range.Start, mb.Range.End, mb.X, mb.Width)
			}
		}
		return nil
	},
}
