package report

import (
	"github.com/shopspring/decimal"

	"github.com/samandr77/microservices/reports/internal/entity"
)

const (
	titleCustomers = "Análisis de Facturas de Clientes - ANALISIS DE FACTURACION DE CLIENTES IRR"
	titleVendors   = "Análisis de Facturas de Proveedores - ANALISIS DE FACTURACION DE PROVEEDORES IRR"
	titleGeneral   = "Análisis de Facturas - REPORTE GENERAL"

	columnCustomer = "Cliente"
	columnVendor   = "Proveedor"
	columnPartner  = "Partner"

	docTypeInvoice   = "Factura"
	docTypeUndefined = "Sin definir"

	noPaymentTerm = "No definido"
	noSalesperson = "Sin Vendedor"
	noDate        = "N/A"
)

// Group holds the invoices of one partner in input order.
type Group struct {
	Partner  string
	Invoices []entity.Invoice
	Total    decimal.Decimal
}

// GroupByPartner groups invoices by partner name. Groups keep the order in
// which each partner first appears.
func GroupByPartner(invoices []entity.Invoice) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)

	for _, inv := range invoices {
		i, ok := index[inv.PartnerName]
		if !ok {
			i = len(groups)
			index[inv.PartnerName] = i

			groups = append(groups, Group{
				Partner: inv.PartnerName,
				Total:   decimal.Zero,
			})
		}

		groups[i].Invoices = append(groups[i].Invoices, inv)
		groups[i].Total = groups[i].Total.Add(inv.AmountTotal)
	}

	return groups
}

type Heading struct {
	Title         string
	PartnerColumn string
}

// HeadingFor picks the report title from the first invoice.
func HeadingFor(invoices []entity.Invoice) Heading {
	if len(invoices) > 0 {
		switch {
		case invoices[0].MoveType.IsCustomer():
			return Heading{Title: titleCustomers, PartnerColumn: columnCustomer}
		case invoices[0].MoveType.IsVendor():
			return Heading{Title: titleVendors, PartnerColumn: columnVendor}
		}
	}

	return Heading{Title: titleGeneral, PartnerColumn: columnPartner}
}

// ReportDate is the first invoice date or N/A.
func ReportDate(invoices []entity.Invoice) string {
	if len(invoices) == 0 || invoices[0].InvoiceDate == nil {
		return noDate
	}

	return invoices[0].InvoiceDate.Format("2006-01-02")
}

func documentType(t entity.MoveType) string {
	if t.IsInvoice() {
		return docTypeInvoice
	}

	return docTypeUndefined
}

func paymentTerm(inv entity.Invoice) string {
	if inv.PaymentTerm == "" {
		return noPaymentTerm
	}

	return inv.PaymentTerm
}

func salesperson(inv entity.Invoice) string {
	if inv.Salesperson == "" {
		return noSalesperson
	}

	return inv.Salesperson
}

// currencyRate falls back to 1 when the rate is unset or zero.
func currencyRate(inv entity.Invoice) float64 {
	if inv.CurrencyRate == nil || inv.CurrencyRate.IsZero() {
		return 1.0
	}

	return inv.CurrencyRate.InexactFloat64()
}
