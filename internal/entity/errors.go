package entity

import "errors"

var (
	ErrIncorrectRequestBody = errors.New("incorrect request body")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrNoConfirmedInvoices  = errors.New("no confirmed invoices to print")
	ErrConversionFailed     = errors.New("document conversion failed")
	ErrNoRecipients         = errors.New("no recipients")
)
