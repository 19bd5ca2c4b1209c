package storage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/reports/internal/clients/storage"
	"github.com/samandr77/microservices/reports/pkg/config"
)

func testConfig() config.Storage {
	return config.Storage{
		Timeout:       time.Second,
		RetryAttempts: 2,
		RetryWaitMin:  time.Millisecond,
		RetryWaitMax:  5 * time.Millisecond,
	}
}

func TestClient_DownloadDocument(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		_, _ = w.Write([]byte("%PDF-remote"))
	}))
	t.Cleanup(server.Close)

	data, err := storage.NewClient(testConfig()).DownloadDocument(context.Background(), server.URL+"/report.pdf")
	require.NoError(t, err)
	require.Equal(t, "%PDF-remote", string(data))
	require.EqualValues(t, 2, calls.Load())
}

func TestClient_DownloadDocument_NotFound(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	_, err := storage.NewClient(testConfig()).DownloadDocument(context.Background(), server.URL)
	require.EqualError(t, err, "unexpected code 404")
	require.EqualValues(t, 1, calls.Load())
}
