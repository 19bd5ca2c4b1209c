package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type MoveType string

const (
	MoveTypeOutInvoice MoveType = "out_invoice"
	MoveTypeOutRefund  MoveType = "out_refund"
	MoveTypeInInvoice  MoveType = "in_invoice"
	MoveTypeInRefund   MoveType = "in_refund"
	MoveTypeEntry      MoveType = "entry"
)

func (t MoveType) IsValid() bool {
	switch t {
	case MoveTypeOutInvoice, MoveTypeOutRefund, MoveTypeInInvoice, MoveTypeInRefund, MoveTypeEntry:
		return true
	}

	return false
}

// IsCustomer reports whether the move was issued to a customer.
func (t MoveType) IsCustomer() bool {
	return t == MoveTypeOutInvoice || t == MoveTypeOutRefund
}

// IsVendor reports whether the move was received from a vendor.
func (t MoveType) IsVendor() bool {
	return t == MoveTypeInInvoice || t == MoveTypeInRefund
}

// IsInvoice is false for refunds and journal entries.
func (t MoveType) IsInvoice() bool {
	return t == MoveTypeOutInvoice || t == MoveTypeInInvoice
}

type InvoiceState string

const (
	InvoiceStateDraft  InvoiceState = "draft"
	InvoiceStatePosted InvoiceState = "posted"
	InvoiceStateCancel InvoiceState = "cancel"
)

func (s InvoiceState) IsValid() bool {
	switch s {
	case InvoiceStateDraft, InvoiceStatePosted, InvoiceStateCancel:
		return true
	}

	return false
}

type Invoice struct {
	ID           uuid.UUID        `json:"id"`
	Name         string           `json:"name"`
	MoveType     MoveType         `json:"moveType"`
	State        InvoiceState     `json:"state"`
	PartnerID    uuid.UUID        `json:"partnerId"`
	PartnerName  string           `json:"partnerName"`
	PaymentTerm  string           `json:"paymentTerm"`
	Salesperson  string           `json:"salesperson"`
	InvoiceDate  *time.Time       `json:"invoiceDate"`
	AmountTotal  decimal.Decimal  `json:"amountTotal"`
	Currency     string           `json:"currency"`
	CurrencyRate *decimal.Decimal `json:"currencyRate"`
}

func (i Invoice) IsDraft() bool {
	return i.State == InvoiceStateDraft
}

type InvoicesFilter struct {
	MoveTypes []MoveType
	States    []InvoiceState
	PartnerID uuid.UUID
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     uint64
}
