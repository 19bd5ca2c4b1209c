package service

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/samandr77/microservices/reports/internal/entity"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	InvoicesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Invoice, error)
	InvoicesByFilter(ctx context.Context, filter entity.InvoicesFilter) ([]entity.Invoice, error)
	CreateAttachment(ctx context.Context, attachment entity.Attachment) error
	AttachmentByID(ctx context.Context, id uuid.UUID) (entity.Attachment, error)
	DeleteAttachmentsOlderThan(ctx context.Context, resModel string, olderThan time.Time) (int64, error)
}

type Spreadsheet interface {
	Build(invoices []entity.Invoice) ([]byte, error)
}

type Converter interface {
	Convert(ctx context.Context, xlsx []byte) ([]byte, error)
}

type S3 interface {
	DownloadDocument(ctx context.Context, url string) ([]byte, error)
}

type Mailer interface {
	SendWithAttachment(mail entity.Mail) error
}

type Events interface {
	SendReportGenerated(ctx context.Context, attachmentID uuid.UUID, url string, invoiceCount int, createdAt time.Time)
}

type Options struct {
	DownloadPath string
	Retention    time.Duration
}

type Service struct {
	repo        Repository
	spreadsheet Spreadsheet
	converter   Converter
	s3Client    S3
	mailer      Mailer
	events      Events
	opts        Options
}

func New(
	repo Repository,
	spreadsheet Spreadsheet,
	converter Converter,
	s3Client S3,
	mailer Mailer,
	events Events,
	opts Options,
) *Service {
	return &Service{
		repo:        repo,
		spreadsheet: spreadsheet,
		converter:   converter,
		s3Client:    s3Client,
		mailer:      mailer,
		events:      events,
		opts:        opts,
	}
}

// PrintInvoicesReport renders the non-draft invoices among ids into a PDF,
// stores it as an attachment and returns the action that downloads it.
func (s *Service) PrintInvoicesReport(ctx context.Context, ids []uuid.UUID) (entity.GeneratedReport, error) {
	invoices, err := s.repo.InvoicesByIDs(ctx, ids)
	if err != nil {
		return entity.GeneratedReport{}, fmt.Errorf("get invoices: %w", err)
	}

	if len(invoices) != len(ids) {
		slog.WarnContext(ctx, "some invoices were not found", "requested", len(ids), "found", len(invoices))
	}

	return s.printReport(ctx, invoices)
}

func (s *Service) PrintInvoicesReportByFilter(ctx context.Context, filter entity.InvoicesFilter) (entity.GeneratedReport, error) {
	if filter.Limit == 0 {
		filter.Limit = MaxReportInvoices
	}

	invoices, err := s.repo.InvoicesByFilter(ctx, filter)
	if err != nil {
		return entity.GeneratedReport{}, fmt.Errorf("get invoices by filter: %w", err)
	}

	return s.printReport(ctx, invoices)
}

// RenderSpreadsheet builds the xlsx workbook without converting it.
func (s *Service) RenderSpreadsheet(ctx context.Context, ids []uuid.UUID) ([]byte, error) {
	invoices, err := s.repo.InvoicesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get invoices: %w", err)
	}

	confirmed := confirmedInvoices(invoices)
	if len(confirmed) == 0 {
		return nil, entity.ErrNoConfirmedInvoices
	}

	xlsx, err := s.spreadsheet.Build(confirmed)
	if err != nil {
		return nil, fmt.Errorf("build spreadsheet: %w", err)
	}

	return xlsx, nil
}

func (s *Service) printReport(ctx context.Context, invoices []entity.Invoice) (entity.GeneratedReport, error) {
	confirmed := confirmedInvoices(invoices)
	if len(confirmed) == 0 {
		return entity.GeneratedReport{}, entity.ErrNoConfirmedInvoices
	}

	xlsx, err := s.spreadsheet.Build(confirmed)
	if err != nil {
		return entity.GeneratedReport{}, fmt.Errorf("build spreadsheet: %w", err)
	}

	pdf, err := s.converter.Convert(ctx, xlsx)
	if err != nil {
		return entity.GeneratedReport{}, fmt.Errorf("convert to pdf: %w", err)
	}

	attachment := newReportAttachment(ctx, pdf)

	err = s.repo.CreateAttachment(ctx, attachment)
	if err != nil {
		return entity.GeneratedReport{}, fmt.Errorf("create attachment: %w", err)
	}

	url := s.downloadURL(attachment.ID)

	if s.events != nil {
		s.events.SendReportGenerated(ctx, attachment.ID, url, len(confirmed), attachment.CreatedAt)
	}

	slog.InfoContext(ctx, "invoices report generated",
		"attachment_id", attachment.ID, "invoices", len(confirmed), "size", attachment.FileSize)

	return entity.GeneratedReport{
		AttachmentID: attachment.ID,
		InvoiceCount: len(confirmed),
		Action: entity.URLAction{
			Type:   entity.ActionTypeURL,
			URL:    url,
			Target: entity.ActionTargetSelf,
		},
	}, nil
}

func (s *Service) DownloadAttachment(ctx context.Context, id uuid.UUID) (entity.DownloadedAttachment, error) {
	attachment, err := s.repo.AttachmentByID(ctx, id)
	if err != nil {
		return entity.DownloadedAttachment{}, err
	}

	data := attachment.Data

	if attachment.Type == entity.AttachmentTypeURL {
		data, err = s.s3Client.DownloadDocument(ctx, attachment.URL)
		if err != nil {
			return entity.DownloadedAttachment{}, fmt.Errorf("download %s: %w", attachment.ID, err)
		}
	}

	return entity.DownloadedAttachment{
		Name:     attachment.Name,
		MimeType: attachment.MimeType,
		Data:     data,
	}, nil
}

func (s *Service) MailReport(ctx context.Context, attachmentID uuid.UUID, recipients []string) error {
	if len(recipients) == 0 {
		return entity.ErrNoRecipients
	}

	doc, err := s.DownloadAttachment(ctx, attachmentID)
	if err != nil {
		return fmt.Errorf("get attachment: %w", err)
	}

	err = s.mailer.SendWithAttachment(entity.Mail{
		Recipients: recipients,
		Subject:    "Reporte de Facturas",
		Body:       "Se adjunta el reporte de facturas confirmadas.",
		FileName:   doc.Name,
		MimeType:   doc.MimeType,
		Data:       doc.Data,
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "invoices report mailed", "attachment_id", attachmentID, "recipients", len(recipients))

	return nil
}

func (s *Service) DeleteExpiredAttachments(ctx context.Context) error {
	deleted, err := s.repo.DeleteAttachmentsOlderThan(ctx, entity.ResModelInvoice, time.Now().Add(-s.opts.Retention))
	if err != nil {
		return fmt.Errorf("delete attachments: %w", err)
	}

	if deleted > 0 {
		slog.InfoContext(ctx, "expired report attachments deleted", "count", deleted)
	}

	return nil
}

func (s *Service) downloadURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/%s?download=true", strings.TrimRight(s.opts.DownloadPath, "/"), id)
}

func confirmedInvoices(invoices []entity.Invoice) []entity.Invoice {
	confirmed := make([]entity.Invoice, 0, len(invoices))

	for _, inv := range invoices {
		if inv.IsDraft() {
			continue
		}

		confirmed = append(confirmed, inv)
	}

	return confirmed
}

func newReportAttachment(ctx context.Context, pdf []byte) entity.Attachment {
	sum := sha1.Sum(pdf) //nolint:gosec

	attachment := entity.Attachment{
		ID:        uuid.Must(uuid.NewV4()),
		Name:      entity.ReportFileName,
		Type:      entity.AttachmentTypeBinary,
		MimeType:  entity.ReportMimeType,
		Data:      pdf,
		FileSize:  int64(len(pdf)),
		Checksum:  hex.EncodeToString(sum[:]),
		ResModel:  entity.ResModelInvoice,
		CreatedAt: time.Now(),
	}

	if user, err := entity.UserFromContext(ctx); err == nil {
		attachment.CreatedBy = uuid.NullUUID{UUID: user.ID, Valid: true}
	}

	return attachment
}
