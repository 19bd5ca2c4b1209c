package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/samandr77/microservices/reports/internal/entity"
)

const (
	inputName  = "report.xlsx"
	outputName = "report.pdf"
	profileDir = "profile"

	// soffice may outlive the wrapper script and keep its pipes open.
	waitDelay = 5 * time.Second
)

type LibreOffice struct {
	binary  string
	timeout time.Duration
	sem     *semaphore.Weighted
}

func NewLibreOffice(binary string, timeout time.Duration, maxProcs int64) *LibreOffice {
	if maxProcs < 1 {
		maxProcs = 1
	}

	return &LibreOffice{
		binary:  binary,
		timeout: timeout,
		sem:     semaphore.NewWeighted(maxProcs),
	}
}

// Convert turns an xlsx workbook into a PDF. Every call works in its own
// temporary directory, which is removed before returning.
func (c *LibreOffice) Convert(ctx context.Context, xlsx []byte) ([]byte, error) {
	err := c.sem.Acquire(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("wait for converter slot: %w", err)
	}
	defer c.sem.Release(1)

	dir, err := os.MkdirTemp("", "invoice-report-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			slog.ErrorContext(ctx, "remove converter temp dir", "error", err, "dir", dir)
		}
	}()

	input := filepath.Join(dir, inputName)

	err = os.WriteFile(input, xlsx, 0o600)
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// A private profile lets several conversions run side by side.
	profile := "-env:UserInstallation=file://" + filepath.ToSlash(filepath.Join(dir, profileDir))

	//nolint:gosec
	cmd := exec.CommandContext(ctx, c.binary,
		profile, "--headless", "--convert-to", "pdf", "--outdir", dir, input)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()

	err = cmd.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrConversionFailed, ctxErr)
		}

		return nil, fmt.Errorf("%w: %w: %s", entity.ErrConversionFailed, err, strings.TrimSpace(stderr.String()))
	}

	slog.DebugContext(ctx, "document converted", "duration", time.Since(start), "output", strings.TrimSpace(stdout.String()))

	pdf, err := os.ReadFile(filepath.Join(dir, outputName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no output produced: %s", entity.ErrConversionFailed, strings.TrimSpace(stderr.String()))
		}

		return nil, fmt.Errorf("read pdf: %w", err)
	}

	return pdf, nil
}
