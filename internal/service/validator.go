package service

import (
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/reports/internal/entity"
)

// MaxReportInvoices caps how many invoices one report may hold. Filters
// without a limit get this one.
const MaxReportInvoices = 5000

func ValidateInvoiceIDs(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: invoiceIds is empty", entity.ErrIncorrectRequestBody)
	}

	if len(ids) > MaxReportInvoices {
		return fmt.Errorf("%w: too many invoices: %d, max %d", entity.ErrIncorrectRequestBody, len(ids), MaxReportInvoices)
	}

	for _, id := range ids {
		if id.IsNil() {
			return fmt.Errorf("%w: nil invoice id", entity.ErrIncorrectRequestBody)
		}
	}

	return nil
}

func ValidateInvoicesFilter(filter entity.InvoicesFilter) error {
	for _, t := range filter.MoveTypes {
		if !t.IsValid() {
			return fmt.Errorf("%w: invalid move type: %s", entity.ErrIncorrectRequestBody, t)
		}
	}

	for _, st := range filter.States {
		if !st.IsValid() {
			return fmt.Errorf("%w: invalid state: %s", entity.ErrIncorrectRequestBody, st)
		}
	}

	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return fmt.Errorf("%w: dateFrom is after dateTo", entity.ErrIncorrectRequestBody)
	}

	if filter.Limit > MaxReportInvoices {
		return fmt.Errorf("%w: limit %d exceeds %d", entity.ErrIncorrectRequestBody, filter.Limit, MaxReportInvoices)
	}

	return nil
}
