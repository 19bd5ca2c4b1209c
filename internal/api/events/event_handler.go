package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/internal/service"
	"github.com/samandr77/microservices/reports/pkg/logger"
)

type Service interface {
	PrintInvoicesReport(ctx context.Context, ids []uuid.UUID) (entity.GeneratedReport, error)
	MailReport(ctx context.Context, attachmentID uuid.UUID, recipients []string) error
}

type EventHandler struct {
	s Service
}

func NewEventHandler(s Service) *EventHandler {
	return &EventHandler{s: s}
}

type OnReportRequestedEvent struct {
	RequestID  uuid.UUID   `json:"request_id"`
	InvoiceIDs []uuid.UUID `json:"invoice_ids"`
	Recipients []string    `json:"recipients"`
}

func (h *EventHandler) OnReportRequested(ctx context.Context, msg kafka.Message) error {
	var event OnReportRequestedEvent

	err := json.Unmarshal(msg.Value, &event)
	if err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	if !event.RequestID.IsNil() {
		ctx = logger.SetRequestID(ctx, event.RequestID.String())
	}

	err = service.ValidateInvoiceIDs(event.InvoiceIDs)
	if err != nil {
		return fmt.Errorf("validate event: %w", err)
	}

	report, err := h.s.PrintInvoicesReport(ctx, event.InvoiceIDs)
	if err != nil {
		return fmt.Errorf("print invoices report: %w", err)
	}

	if len(event.Recipients) == 0 {
		return nil
	}

	err = h.s.MailReport(ctx, report.AttachmentID, event.Recipients)
	if err != nil {
		return fmt.Errorf("mail report %s: %w", report.AttachmentID, err)
	}

	slog.InfoContext(ctx, "requested report delivered", "attachment_id", report.AttachmentID)

	return nil
}
