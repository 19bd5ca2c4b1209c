package entity

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type AttachmentType string

const (
	AttachmentTypeBinary AttachmentType = "binary"
	AttachmentTypeURL    AttachmentType = "url"
)

const ResModelInvoice = "account.move"

type Attachment struct {
	ID        uuid.UUID
	Name      string
	Type      AttachmentType
	MimeType  string
	Data      []byte
	URL       string
	FileSize  int64
	Checksum  string
	ResModel  string
	CreatedBy uuid.NullUUID
	CreatedAt time.Time
}

type DownloadedAttachment struct {
	Name     string
	MimeType string
	Data     []byte
}
