package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type xlsxOptions struct {
	ids []string
	out string
}

func newXLSXCmd(root *rootOptions) *cobra.Command {
	opts := &xlsxOptions{}

	cmd := &cobra.Command{
		Use:   "xlsx",
		Short: "Write only the spreadsheet, without PDF conversion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			ids, err := parseIDs(opts.ids)
			if err != nil {
				return err
			}

			s, pool, err := setup(ctx, root)
			if err != nil {
				return err
			}
			defer pool.Close()

			data, err := s.RenderSpreadsheet(ctx, ids)
			if err != nil {
				return err
			}

			err = os.WriteFile(opts.out, data, 0o600)
			if err != nil {
				return fmt.Errorf("write %s: %w", opts.out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "spreadsheet written to %s\n", opts.out)

			return nil
		},
	}

	cmd.Flags().StringSliceVar(&opts.ids, "ids", nil, "comma separated invoice ids")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output .xlsx file")
	_ = cmd.MarkFlagRequired("ids")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}
