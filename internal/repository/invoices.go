package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/samandr77/microservices/reports/internal/entity"
)

func selectInvoices() sq.SelectBuilder {
	return sq.Select(
		"i.id",
		"i.name",
		"i.move_type",
		"i.state",
		"i.partner_id",
		"p.name",
		"COALESCE(pt.name, '')",
		"COALESCE(s.name, '')",
		"i.invoice_date",
		"i.amount_total",
		"c.name",
		"i.currency_rate",
	).
		From("invoices i").
		Join("partners p ON p.id = i.partner_id").
		LeftJoin("payment_terms pt ON pt.id = i.payment_term_id").
		LeftJoin("salespeople s ON s.id = i.salesperson_id").
		Join("currencies c ON c.id = i.currency_id").
		PlaceholderFormat(sq.Dollar)
}

// InvoicesByIDs returns the invoices in the order of ids. Unknown ids are
// skipped.
func (r *Repository) InvoicesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Invoice, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sqlQuery, args, err := selectInvoices().Where(sq.Eq{"i.id": ids}).ToSql()
	if err != nil {
		return nil, err
	}

	found, err := r.queryInvoices(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]entity.Invoice, len(found))

	for _, inv := range found {
		byID[inv.ID] = inv
	}

	invoices := make([]entity.Invoice, 0, len(found))

	for _, id := range ids {
		inv, ok := byID[id]
		if !ok {
			continue
		}

		invoices = append(invoices, inv)
		delete(byID, id)
	}

	return invoices, nil
}

func (r *Repository) InvoicesByFilter(ctx context.Context, filter entity.InvoicesFilter) ([]entity.Invoice, error) {
	stmt := applyInvoicesFilter(selectInvoices(), filter)

	sqlQuery, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryInvoices(ctx, sqlQuery, args...)
}

func applyInvoicesFilter(stmt sq.SelectBuilder, filter entity.InvoicesFilter) sq.SelectBuilder {
	if len(filter.MoveTypes) > 0 {
		stmt = stmt.Where(sq.Eq{"i.move_type": filter.MoveTypes})
	}

	if len(filter.States) > 0 {
		stmt = stmt.Where(sq.Eq{"i.state": filter.States})
	}

	if !filter.PartnerID.IsNil() {
		stmt = stmt.Where(sq.Eq{"i.partner_id": filter.PartnerID})
	}

	if filter.DateFrom != nil {
		stmt = stmt.Where(sq.GtOrEq{"i.invoice_date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		stmt = stmt.Where(sq.LtOrEq{"i.invoice_date": *filter.DateTo})
	}

	if filter.Limit > 0 {
		stmt = stmt.Limit(filter.Limit)
	}

	return stmt.OrderBy("i.invoice_date", "i.name")
}

func (r *Repository) queryInvoices(ctx context.Context, sqlQuery string, args ...any) ([]entity.Invoice, error) {
	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}

	defer rows.Close()

	invoices := make([]entity.Invoice, 0)

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

func scanInvoice(row pgx.Row) (entity.Invoice, error) {
	var inv entity.Invoice

	err := row.Scan(
		&inv.ID,
		&inv.Name,
		&inv.MoveType,
		&inv.State,
		&inv.PartnerID,
		&inv.PartnerName,
		&inv.PaymentTerm,
		&inv.Salesperson,
		&inv.InvoiceDate,
		&inv.AmountTotal,
		&inv.Currency,
		&inv.CurrencyRate,
	)

	return inv, err
}
