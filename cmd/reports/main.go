package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samandr77/microservices/reports/internal/api"
	"github.com/samandr77/microservices/reports/internal/api/events"
	"github.com/samandr77/microservices/reports/internal/clients/mailer"
	"github.com/samandr77/microservices/reports/internal/clients/storage"
	"github.com/samandr77/microservices/reports/internal/converter"
	"github.com/samandr77/microservices/reports/internal/report"
	"github.com/samandr77/microservices/reports/internal/repository"
	"github.com/samandr77/microservices/reports/internal/service"
	"github.com/samandr77/microservices/reports/pkg/broker"
	"github.com/samandr77/microservices/reports/pkg/config"
	"github.com/samandr77/microservices/reports/pkg/job"
	"github.com/samandr77/microservices/reports/pkg/logger"
	"github.com/samandr77/microservices/reports/pkg/postgres"
	"github.com/samandr77/microservices/reports/pkg/transport"
)

const (
	ReadTimeout  = 20 * time.Second
	WriteTimeout = 120 * time.Second
)

//nolint:funlen
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	_, err = logger.New(cfg.LogLevel)
	panicOnErr("init logger", err)

	pool, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.PostgresDSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	builder := report.NewBuilder(cfg.Report.CompanyBranch)
	libreOffice := converter.NewLibreOffice(cfg.Converter.Binary, cfg.Converter.Timeout, cfg.Converter.MaxProcs)
	s3Client := storage.NewClient(cfg.Storage)
	mail := mailer.New(cfg.Mailer)

	var reportEvents service.Events

	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.ReportGeneratedTopic != "" {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ReportGeneratedTopic)
		defer producer.Close()

		reportEvents = producer
	}

	s := service.New(repo, builder, libreOffice, s3Client, mail, reportEvents, service.Options{
		DownloadPath: cfg.Report.AttachmentDownloadPath,
		Retention:    cfg.Report.Retention,
	})

	// Kafka consumers
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.ReportRequestedTopic != "" {
		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.ConsumerID, cfg.Kafka.ReportRequestedTopic)
		defer consumer.Close()

		eventHandler := events.NewEventHandler(s)

		consumer.Handle(cfg.Kafka.ReportRequestedTopic, eventHandler.OnReportRequested)
		consumer.Consume(ctx)
	}

	jobs := job.NewService().
		TryRegisterJob(cfg.Report.RetentionEnabled, "delete_expired_attachments", cfg.Report.JobCleanupInterval, s.DeleteExpiredAttachments).
		Start(ctx)

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(cfg.AuthServiceURL, &http.Client{
		Transport: transport.NewLoggingRoundTripper(nil),
		Timeout:   10 * time.Second,
	})

	router := api.NewRouter(handler, mw, cfg.Report.AttachmentDownloadPath)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		slog.InfoContext(ctx, "http server started", "port", cfg.HTTPPort)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}

		slog.DebugContext(ctx, "http server stopped")
	}()

	waitSignal(cancel, server)

	jobs.Stop()
	wg.Wait()
}

func waitSignal(cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	slog.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		slog.ErrorContext(shutdownCtx, "server shutdown", "error", err)
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
