package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zabl/finextract"
	"github.com/zabl/finextract/pages"
)

func newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages <spec> <count|file.pdf>",
		Short: "Show the zero-based page indices a specification selects",
		Long: `Resolve a page specification against a page count, or against the
page count of a PDF, and print the selected zero-based indices.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := pageCount(args[1])
			if err != nil {
				return err
			}
			set, err := pages.Resolve(args[0], count)
			if err != nil {
				return err
			}

			indices := make([]string, 0, set.Len())
			for _, i := range set.Sorted() {
				indices = append(indices, strconv.Itoa(i))
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(indices, ","))
			return nil
		},
	}
}

func pageCount(arg string) (int, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("page count must not be negative: %d", n)
		}
		return n, nil
	}
	return finextract.PageCount(arg)
}
