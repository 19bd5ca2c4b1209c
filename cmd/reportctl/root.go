package main

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/samandr77/microservices/reports/internal/clients/mailer"
	"github.com/samandr77/microservices/reports/internal/clients/storage"
	"github.com/samandr77/microservices/reports/internal/converter"
	"github.com/samandr77/microservices/reports/internal/report"
	"github.com/samandr77/microservices/reports/internal/repository"
	"github.com/samandr77/microservices/reports/internal/service"
	"github.com/samandr77/microservices/reports/pkg/config"
	"github.com/samandr77/microservices/reports/pkg/logger"
	"github.com/samandr77/microservices/reports/pkg/postgres"
)

type rootOptions struct {
	envPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "reportctl",
		Short: "Print confirmed invoices grouped by partner",
		Long: `reportctl runs the invoice report action outside the HTTP service.

It reads the same environment as the service (POSTGRES_DSN, CONVERTER_*,
REPORT_*, MAILER_*), optionally from a .env file.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envPath, "env", ".env", "path to the .env file")

	cmd.AddCommand(newPrintCmd(opts), newFilterCmd(opts), newXLSXCmd(opts))

	return cmd
}

// setup connects to the database and builds the service the same way the
// HTTP server does, without the event producer.
func setup(ctx context.Context, opts *rootOptions) (*service.Service, *pgxpool.Pool, error) {
	cfg, err := config.New(opts.envPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	_, err = logger.New(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	err = postgres.UpMigrations(cfg.PostgresDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("up migrations: %w", err)
	}

	s := service.New(
		repository.New(pool),
		report.NewBuilder(cfg.Report.CompanyBranch),
		converter.NewLibreOffice(cfg.Converter.Binary, cfg.Converter.Timeout, cfg.Converter.MaxProcs),
		storage.NewClient(cfg.Storage),
		mailer.New(cfg.Mailer),
		nil,
		service.Options{
			DownloadPath: cfg.Report.AttachmentDownloadPath,
			Retention:    cfg.Report.Retention,
		},
	)

	return s, pool, nil
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))

	for _, v := range raw {
		id, err := uuid.FromString(v)
		if err != nil {
			return nil, fmt.Errorf("invoice id %q: %w", v, err)
		}

		ids = append(ids, id)
	}

	err := service.ValidateInvoiceIDs(ids)
	if err != nil {
		return nil, err
	}

	return ids, nil
}
