package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finextract",
		Short:         "Extract tables and text from financial-statement PDFs",
		Long:          `Run the Stream, PlainText and Lattice extraction engines over a PDF and combine their output into one xlsx workbook.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newExtractCmd(), newPagesCmd())
	return root
}
