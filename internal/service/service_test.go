package service_test

import (
	"context"
	"crypto/sha1" //nolint:gosec
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/internal/mocks"
	"github.com/samandr77/microservices/reports/internal/service"
)

type TestService struct {
	repo        *mocks.MockRepository
	spreadsheet *mocks.MockSpreadsheet
	converter   *mocks.MockConverter
	s3Client    *mocks.MockS3
	mailer      *mocks.MockMailer
	events      *mocks.MockEvents
	s           *service.Service
}

func NewTestService(t *testing.T) *TestService {
	t.Helper()

	ctrl := gomock.NewController(t)

	ts := &TestService{
		repo:        mocks.NewMockRepository(ctrl),
		spreadsheet: mocks.NewMockSpreadsheet(ctrl),
		converter:   mocks.NewMockConverter(ctrl),
		s3Client:    mocks.NewMockS3(ctrl),
		mailer:      mocks.NewMockMailer(ctrl),
		events:      mocks.NewMockEvents(ctrl),
	}

	ts.s = service.New(ts.repo, ts.spreadsheet, ts.converter, ts.s3Client, ts.mailer, ts.events, service.Options{
		DownloadPath: "/web/content/",
		Retention:    24 * time.Hour,
	})

	return ts
}

func testInvoice(name string, state entity.InvoiceState) entity.Invoice {
	return entity.Invoice{
		ID:          uuid.Must(uuid.NewV4()),
		Name:        name,
		MoveType:    entity.MoveTypeOutInvoice,
		State:       state,
		PartnerID:   uuid.Must(uuid.NewV4()),
		PartnerName: "Distribuidora Sur",
		AmountTotal: decimal.RequireFromString("100.50"),
		Currency:    "ARS",
	}
}

func TestService_PrintInvoicesReport(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	user := entity.User{ID: uuid.Must(uuid.NewV4())}
	ctx := entity.SetUserToContext(context.Background(), user)

	posted := testInvoice("FA-A 0001-00000001", entity.InvoiceStatePosted)
	draft := testInvoice("/", entity.InvoiceStateDraft)
	cancelled := testInvoice("FA-A 0001-00000002", entity.InvoiceStateCancel)
	ids := []uuid.UUID{posted.ID, draft.ID, cancelled.ID}

	xlsx := []byte("xlsx")
	pdf := []byte("%PDF-1.7 report")
	sum := sha1.Sum(pdf) //nolint:gosec

	var stored entity.Attachment

	gomock.InOrder(
		ts.repo.EXPECT().InvoicesByIDs(ctx, ids).Return([]entity.Invoice{posted, draft, cancelled}, nil),
		ts.spreadsheet.EXPECT().Build([]entity.Invoice{posted, cancelled}).Return(xlsx, nil),
		ts.converter.EXPECT().Convert(ctx, xlsx).Return(pdf, nil),
		ts.repo.EXPECT().CreateAttachment(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, a entity.Attachment) error {
				stored = a
				return nil
			}),
		ts.events.EXPECT().SendReportGenerated(ctx, gomock.Any(), gomock.Any(), 2, gomock.Any()),
	)

	report, err := ts.s.PrintInvoicesReport(ctx, ids)
	r.NoError(err)

	r.Equal(entity.ReportFileName, stored.Name)
	r.Equal(entity.AttachmentTypeBinary, stored.Type)
	r.Equal(entity.ReportMimeType, stored.MimeType)
	r.Equal(entity.ResModelInvoice, stored.ResModel)
	r.Equal(pdf, stored.Data)
	r.Equal(int64(len(pdf)), stored.FileSize)
	r.Equal(hex.EncodeToString(sum[:]), stored.Checksum)
	r.Equal(uuid.NullUUID{UUID: user.ID, Valid: true}, stored.CreatedBy)
	r.False(stored.CreatedAt.IsZero())

	r.Equal(stored.ID, report.AttachmentID)
	r.Equal(2, report.InvoiceCount)
	r.Equal(entity.URLAction{
		Type:   "ir.actions.act_url",
		URL:    "/web/content/" + stored.ID.String() + "?download=true",
		Target: "self",
	}, report.Action)
}

func TestService_PrintInvoicesReport_Errors(t *testing.T) {
	t.Parallel()

	posted := testInvoice("FA-A 0001-00000001", entity.InvoiceStatePosted)
	draft := testInvoice("/", entity.InvoiceStateDraft)
	errDB := errors.New("db is down")

	tests := []struct {
		name    string
		prepare func(ts *TestService)
		wantErr error
	}{
		{
			name: "only drafts",
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().InvoicesByIDs(gomock.Any(), gomock.Any()).Return([]entity.Invoice{draft}, nil)
			},
			wantErr: entity.ErrNoConfirmedInvoices,
		},
		{
			name: "nothing found",
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().InvoicesByIDs(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			wantErr: entity.ErrNoConfirmedInvoices,
		},
		{
			name: "repository error",
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().InvoicesByIDs(gomock.Any(), gomock.Any()).Return(nil, errDB)
			},
			wantErr: errDB,
		},
		{
			name: "conversion failed",
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().InvoicesByIDs(gomock.Any(), gomock.Any()).Return([]entity.Invoice{posted}, nil)
				ts.spreadsheet.EXPECT().Build(gomock.Any()).Return([]byte("xlsx"), nil)
				ts.converter.EXPECT().Convert(gomock.Any(), gomock.Any()).Return(nil, entity.ErrConversionFailed)
			},
			wantErr: entity.ErrConversionFailed,
		},
		{
			name: "attachment not stored",
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().InvoicesByIDs(gomock.Any(), gomock.Any()).Return([]entity.Invoice{posted}, nil)
				ts.spreadsheet.EXPECT().Build(gomock.Any()).Return([]byte("xlsx"), nil)
				ts.converter.EXPECT().Convert(gomock.Any(), gomock.Any()).Return([]byte("pdf"), nil)
				ts.repo.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).Return(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			tt.prepare(ts)

			_, err := ts.s.PrintInvoicesReport(context.Background(), []uuid.UUID{posted.ID, draft.ID})
			r.ErrorIs(err, tt.wantErr)
		})
	}
}

func TestService_PrintInvoicesReport_WithoutEvents(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	spreadsheet := mocks.NewMockSpreadsheet(ctrl)
	converter := mocks.NewMockConverter(ctrl)

	s := service.New(repo, spreadsheet, converter, nil, nil, nil, service.Options{DownloadPath: "/web/content"})

	posted := testInvoice("FA-A 0001-00000001", entity.InvoiceStatePosted)

	repo.EXPECT().InvoicesByIDs(gomock.Any(), gomock.Any()).Return([]entity.Invoice{posted}, nil)
	spreadsheet.EXPECT().Build(gomock.Any()).Return([]byte("xlsx"), nil)
	converter.EXPECT().Convert(gomock.Any(), gomock.Any()).Return([]byte("pdf"), nil)
	repo.EXPECT().CreateAttachment(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, a entity.Attachment) error {
			if a.CreatedBy.Valid {
				return errors.New("creator must be empty without a user")
			}

			return nil
		})

	report, err := s.PrintInvoicesReport(context.Background(), []uuid.UUID{posted.ID})
	r.NoError(err)
	r.True(strings.HasPrefix(report.Action.URL, "/web/content/"))
	r.True(strings.HasSuffix(report.Action.URL, "?download=true"))
}

func TestService_PrintInvoicesReportByFilter(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ctx := context.Background()
	filter := entity.InvoicesFilter{
		MoveTypes: []entity.MoveType{entity.MoveTypeInInvoice},
		States:    []entity.InvoiceState{entity.InvoiceStatePosted},
	}

	posted := testInvoice("FP-A 0001-00000010", entity.InvoiceStatePosted)

	capped := filter
	capped.Limit = service.MaxReportInvoices

	ts.repo.EXPECT().InvoicesByFilter(ctx, capped).Return([]entity.Invoice{posted}, nil)
	ts.spreadsheet.EXPECT().Build([]entity.Invoice{posted}).Return([]byte("xlsx"), nil)
	ts.converter.EXPECT().Convert(ctx, []byte("xlsx")).Return([]byte("pdf"), nil)
	ts.repo.EXPECT().CreateAttachment(ctx, gomock.Any()).Return(nil)
	ts.events.EXPECT().SendReportGenerated(ctx, gomock.Any(), gomock.Any(), 1, gomock.Any())

	report, err := ts.s.PrintInvoicesReportByFilter(ctx, filter)
	r.NoError(err)
	r.Equal(1, report.InvoiceCount)
}

func TestService_RenderSpreadsheet(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ctx := context.Background()
	posted := testInvoice("FA-A 0001-00000001", entity.InvoiceStatePosted)
	draft := testInvoice("/", entity.InvoiceStateDraft)

	ts.repo.EXPECT().InvoicesByIDs(ctx, gomock.Any()).Return([]entity.Invoice{draft, posted}, nil)
	ts.spreadsheet.EXPECT().Build([]entity.Invoice{posted}).Return([]byte("xlsx"), nil)

	xlsx, err := ts.s.RenderSpreadsheet(ctx, []uuid.UUID{draft.ID, posted.ID})
	r.NoError(err)
	r.Equal([]byte("xlsx"), xlsx)

	ts.repo.EXPECT().InvoicesByIDs(ctx, gomock.Any()).Return([]entity.Invoice{draft}, nil)

	_, err = ts.s.RenderSpreadsheet(ctx, []uuid.UUID{draft.ID})
	r.ErrorIs(err, entity.ErrNoConfirmedInvoices)
}

func TestService_DownloadAttachment(t *testing.T) {
	t.Parallel()

	binaryID := uuid.Must(uuid.NewV4())
	urlID := uuid.Must(uuid.NewV4())

	tests := []struct {
		name    string
		id      uuid.UUID
		prepare func(ts *TestService)
		want    entity.DownloadedAttachment
		wantErr error
	}{
		{
			name: "binary attachment",
			id:   binaryID,
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().AttachmentByID(gomock.Any(), binaryID).Return(entity.Attachment{
					ID:       binaryID,
					Name:     entity.ReportFileName,
					Type:     entity.AttachmentTypeBinary,
					MimeType: entity.ReportMimeType,
					Data:     []byte("pdf"),
				}, nil)
			},
			want: entity.DownloadedAttachment{
				Name:     entity.ReportFileName,
				MimeType: entity.ReportMimeType,
				Data:     []byte("pdf"),
			},
		},
		{
			name: "url attachment",
			id:   urlID,
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().AttachmentByID(gomock.Any(), urlID).Return(entity.Attachment{
					ID:       urlID,
					Name:     "scan.pdf",
					Type:     entity.AttachmentTypeURL,
					MimeType: entity.ReportMimeType,
					URL:      "https://storage.local/scan.pdf",
				}, nil)
				ts.s3Client.EXPECT().DownloadDocument(gomock.Any(), "https://storage.local/scan.pdf").Return([]byte("remote"), nil)
			},
			want: entity.DownloadedAttachment{
				Name:     "scan.pdf",
				MimeType: entity.ReportMimeType,
				Data:     []byte("remote"),
			},
		},
		{
			name: "not found",
			id:   uuid.Must(uuid.NewV4()),
			prepare: func(ts *TestService) {
				ts.repo.EXPECT().AttachmentByID(gomock.Any(), gomock.Any()).Return(entity.Attachment{}, entity.ErrNotFound)
			},
			wantErr: entity.ErrNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := require.New(t)
			ts := NewTestService(t)

			tt.prepare(ts)

			got, err := ts.s.DownloadAttachment(context.Background(), tt.id)
			if tt.wantErr != nil {
				r.ErrorIs(err, tt.wantErr)
				return
			}

			r.NoError(err)
			r.Equal(tt.want, got)
		})
	}
}

func TestService_MailReport(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())
	recipients := []string{"contable@example.com"}

	err := ts.s.MailReport(ctx, id, nil)
	r.ErrorIs(err, entity.ErrNoRecipients)

	ts.repo.EXPECT().AttachmentByID(ctx, id).Return(entity.Attachment{
		ID:       id,
		Name:     entity.ReportFileName,
		Type:     entity.AttachmentTypeBinary,
		MimeType: entity.ReportMimeType,
		Data:     []byte("pdf"),
	}, nil)
	ts.mailer.EXPECT().SendWithAttachment(gomock.Any()).DoAndReturn(func(m entity.Mail) error {
		r.Equal(recipients, m.Recipients)
		r.Equal(entity.ReportFileName, m.FileName)
		r.Equal(entity.ReportMimeType, m.MimeType)
		r.Equal([]byte("pdf"), m.Data)

		return nil
	})

	err = ts.s.MailReport(ctx, id, recipients)
	r.NoError(err)
}

func TestService_DeleteExpiredAttachments(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ctx := context.Background()
	before := time.Now().Add(-24 * time.Hour)

	ts.repo.EXPECT().DeleteAttachmentsOlderThan(ctx, entity.ResModelInvoice, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, olderThan time.Time) (int64, error) {
			r.WithinDuration(before, olderThan, time.Minute)
			return 3, nil
		})

	r.NoError(ts.s.DeleteExpiredAttachments(ctx))

	ts.repo.EXPECT().DeleteAttachmentsOlderThan(ctx, gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db is down"))

	r.Error(ts.s.DeleteExpiredAttachments(ctx))
}

func TestService_PrintInvoicesReportByFilter_KeepsLimit(t *testing.T) {
	t.Parallel()
	r := require.New(t)
	ts := NewTestService(t)

	ctx := context.Background()
	filter := entity.InvoicesFilter{Limit: 10}

	ts.repo.EXPECT().InvoicesByFilter(ctx, filter).Return(nil, nil)

	_, err := ts.s.PrintInvoicesReportByFilter(ctx, filter)
	r.ErrorIs(err, entity.ErrNoConfirmedInvoices)
}
