package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"
)

type Producer struct {
	l                    *slog.Logger
	w                    *kafka.Writer
	reportGeneratedTopic string
}

func NewProducer(brokers []string, topic string) *Producer {
	l := slog.Default().WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		Logger:                 &infoLogger{l: l},
		ErrorLogger:            &errorLogger{l: l},
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                    l,
		w:                    w,
		reportGeneratedTopic: topic,
	}
}

type ReportGeneratedEvent struct {
	AttachmentID uuid.UUID `json:"attachment_id"`
	URL          string    `json:"url"`
	InvoiceCount int       `json:"invoice_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (p *Producer) SendReportGenerated(ctx context.Context, attachmentID uuid.UUID, url string, invoiceCount int, createdAt time.Time) {
	event := ReportGeneratedEvent{
		AttachmentID: attachmentID,
		URL:          url,
		InvoiceCount: invoiceCount,
		CreatedAt:    createdAt,
	}

	b, err := json.Marshal(event)
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.AttachmentID.String()),
		Value: b,
		Topic: p.reportGeneratedTopic,
	})
	if err != nil {
		p.l.ErrorContext(ctx, fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
