package entity

import "github.com/gofrs/uuid/v5"

const (
	ReportFileName = "Reporte_Facturas.pdf"
	ReportMimeType = "application/pdf"
)

type GeneratedReport struct {
	AttachmentID uuid.UUID
	InvoiceCount int
	Action       URLAction
}

type Mail struct {
	Recipients []string
	Subject    string
	Body       string
	FileName   string
	MimeType   string
	Data       []byte
}
