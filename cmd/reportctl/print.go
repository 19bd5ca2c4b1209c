package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/internal/service"
)

type printOptions struct {
	ids        []string
	out        string
	recipients []string
}

func newPrintCmd(root *rootOptions) *cobra.Command {
	opts := &printOptions{}

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Generate the PDF report and store it as an attachment",
		Example: `  # Store the report and print the download action
  reportctl print --ids 0190f4c2-5d1e-7c6a-9b7e-3f0a1b2c3d4e,0190f4c2-5d1e-7c6a-9b7e-3f0a1b2c3d4f

  # Also save the PDF locally and mail it
  reportctl print --ids ... --out reporte.pdf --mail contable@example.com`,
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

			generated, err := s.PrintInvoicesReport(ctx, ids)
			if err != nil {
				return err
			}

			return deliver(cmd, s, generated, opts.out, opts.recipients)
		},
	}

	cmd.Flags().StringSliceVar(&opts.ids, "ids", nil, "comma separated invoice ids")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the PDF to this file")
	cmd.Flags().StringSliceVar(&opts.recipients, "mail", nil, "mail the PDF to these addresses")
	_ = cmd.MarkFlagRequired("ids")

	return cmd
}

// deliver reports the stored attachment and optionally saves and mails it.
func deliver(cmd *cobra.Command, s *service.Service, generated entity.GeneratedReport, out string, recipients []string) error {
	ctx := cmd.Context()

	fmt.Fprintf(cmd.OutOrStdout(), "%d invoices printed: %s\n", generated.InvoiceCount, generated.Action.URL)

	if out != "" {
		doc, err := s.DownloadAttachment(ctx, generated.AttachmentID)
		if err != nil {
			return err
		}

		err = os.WriteFile(out, doc.Data, 0o600)
		if err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
	}

	if len(recipients) > 0 {
		err := s.MailReport(ctx, generated.AttachmentID, recipients)
		if err != nil {
			return err
		}
	}

	return nil
}
