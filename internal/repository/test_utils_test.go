package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/reports/internal/entity"
	"github.com/samandr77/microservices/reports/pkg/postgres"
)

var migrateOnce sync.Once

func dbPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN is not set")
	}

	migrateOnce.Do(func() {
		require.NoError(t, postgres.UpMigrations(dsn))
	})

	pool, err := postgres.Connect(context.Background(), dsn, 10)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}

type seed struct {
	pool *pgxpool.Pool
}

func (s seed) named(t *testing.T, table, name string) uuid.UUID {
	t.Helper()

	id := uuid.Must(uuid.NewV4())

	_, err := s.pool.Exec(context.Background(), "INSERT INTO "+table+" (id, name) VALUES ($1, $2)", id, name)
	require.NoError(t, err)

	return id
}

type invoiceRow struct {
	name       string
	moveType   entity.MoveType
	state      entity.InvoiceState
	partnerID  uuid.UUID
	termID     uuid.NullUUID
	sellerID   uuid.NullUUID
	date       *time.Time
	amount     decimal.Decimal
	currencyID uuid.UUID
	rate       *decimal.Decimal
}

func (s seed) invoice(t *testing.T, row invoiceRow) uuid.UUID {
	t.Helper()

	id := uuid.Must(uuid.NewV4())

	_, err := s.pool.Exec(context.Background(),
		`INSERT INTO invoices
			(id, name, move_type, state, partner_id, payment_term_id, salesperson_id, invoice_date, amount_total, currency_id, currency_rate)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, row.name, row.moveType, row.state, row.partnerID, row.termID, row.sellerID,
		row.date, row.amount, row.currencyID, row.rate,
	)
	require.NoError(t, err)

	return id
}
