package main

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/spf13/cobra"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/internal/service"
)

const dateLayout = "2006-01-02"

type filterOptions struct {
	moveTypes  []string
	states     []string
	partnerID  string
	from       string
	to         string
	limit      uint64
	out        string
	recipients []string
}

func newFilterCmd(root *rootOptions) *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Generate the PDF report for the invoices matching a filter",
		Example: `  # Posted customer invoices of January
  reportctl filter --move-types out_invoice,out_refund --states posted --from 2024-01-01 --to 2024-01-31 -o enero.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter, err := opts.toFilter()
			if err != nil {
				return err
			}

			s, pool, err := setup(ctx, root)
			if err != nil {
				return err
			}
			defer pool.Close()

			generated, err := s.PrintInvoicesReportByFilter(ctx, filter)
			if err != nil {
				return err
			}

			return deliver(cmd, s, generated, opts.out, opts.recipients)
		},
	}

	cmd.Flags().StringSliceVar(&opts.moveTypes, "move-types", nil, "out_invoice, out_refund, in_invoice, in_refund, entry")
	cmd.Flags().StringSliceVar(&opts.states, "states", []string{string(entity.InvoiceStatePosted)}, "draft, posted, cancel")
	cmd.Flags().StringVar(&opts.partnerID, "partner", "", "partner id")
	cmd.Flags().StringVar(&opts.from, "from", "", "first invoice date, YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.to, "to", "", "last invoice date, YYYY-MM-DD")
	cmd.Flags().Uint64Var(&opts.limit, "limit", 0, "max invoices, 0 means the report cap")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the PDF to this file")
	cmd.Flags().StringSliceVar(&opts.recipients, "mail", nil, "mail the PDF to these addresses")

	return cmd
}

func (o *filterOptions) toFilter() (entity.InvoicesFilter, error) {
	filter := entity.InvoicesFilter{
		Limit: o.limit,
	}

	for _, v := range o.moveTypes {
		filter.MoveTypes = append(filter.MoveTypes, entity.MoveType(v))
	}

	for _, v := range o.states {
		filter.States = append(filter.States, entity.InvoiceState(v))
	}

	if o.partnerID != "" {
		id, err := uuid.FromString(o.partnerID)
		if err != nil {
			return entity.InvoicesFilter{}, fmt.Errorf("partner id %q: %w", o.partnerID, err)
		}

		filter.PartnerID = id
	}

	if o.from != "" {
		from, err := time.Parse(dateLayout, o.from)
		if err != nil {
			return entity.InvoicesFilter{}, fmt.Errorf("from: %w", err)
		}

		filter.DateFrom = &from
	}

	if o.to != "" {
		to, err := time.Parse(dateLayout, o.to)
		if err != nil {
			return entity.InvoicesFilter{}, fmt.Errorf("to: %w", err)
		}

		filter.DateTo = &to
	}

	err := service.ValidateInvoicesFilter(filter)
	if err != nil {
		return entity.InvoicesFilter{}, err
	}

	return filter, nil
}
