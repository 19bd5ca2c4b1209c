package repository

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/samandr77/microservices/reports/internal/entity"
)

func (r *Repository) CreateAttachment(ctx context.Context, a entity.Attachment) error {
	sqlQuery :=
		`INSERT INTO attachments
			(id, name, type, mime_type, data, url, file_size, checksum, res_model, created_by, created_at)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, sqlQuery,
		a.ID,
		a.Name,
		a.Type,
		a.MimeType,
		a.Data,
		a.URL,
		a.FileSize,
		a.Checksum,
		a.ResModel,
		a.CreatedBy,
		a.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) AttachmentByID(ctx context.Context, id uuid.UUID) (entity.Attachment, error) {
	sqlQuery := `
		SELECT id, name, type, mime_type, data, url, file_size, checksum, res_model, created_by, created_at
		FROM attachments
		WHERE id = $1`

	var a entity.Attachment

	err := r.db.QueryRow(ctx, sqlQuery, id).Scan(
		&a.ID,
		&a.Name,
		&a.Type,
		&a.MimeType,
		&a.Data,
		&a.URL,
		&a.FileSize,
		&a.Checksum,
		&a.ResModel,
		&a.CreatedBy,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Attachment{}, entity.ErrNotFound
		}

		return entity.Attachment{}, err
	}

	return a, nil
}

// DeleteAttachmentsOlderThan removes attachments of resModel created before
// olderThan and returns how many were removed.
func (r *Repository) DeleteAttachmentsOlderThan(ctx context.Context, resModel string, olderThan time.Time) (int64, error) {
	sqlQuery := `DELETE FROM attachments WHERE res_model = $1 AND created_at < $2`

	tag, err := r.db.Exec(ctx, sqlQuery, resModel, olderThan)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}
