package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ossreport/internal/config"
)

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0755))

	cfg := config.Default()
	cfg.Paths.BaseDir = base
	cfg.Paths.DataDir = "data"
	cfg.Paths.OutputDir = "out"
	cfg.Paths.LogsDir = "logs"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 2 * time.Second
	return cfg
}

func TestNewApplication(t *testing.T) {
	cfg := testConfig(t)

	app, err := NewApplication(cfg, createTestLogger())
	require.NoError(t, err)

	assert.NotNil(t, app.Service)
	assert.NotNil(t, app.Cache)
	assert.NotNil(t, app.Router)
	assert.Equal(t, cfg.Server.ReadTimeout, app.Server.ReadTimeout)
	assert.DirExists(t, app.Paths.OutputDir)
	assert.DirExists(t, app.Paths.LogsDir)
	assert.Equal(t, filepath.Join(cfg.Paths.BaseDir, "data"), app.Paths.DataDir)
}

func TestNewApplication_NilConfig(t *testing.T) {
	_, err := NewApplication(nil, createTestLogger())
	assert.Error(t, err)
}

func TestApplication_Routes(t *testing.T) {
	app, err := NewApplication(testConfig(t), createTestLogger())
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"health", "/healthz", http.StatusOK},
		{"metrics", "/metrics", http.StatusOK},
		{"empty data dir", "/api/v1/datasets", http.StatusOK},
		{"no workbooks for the year", "/api/v1/reports?year=2024&period=TW+I", http.StatusNotFound},
		{"unknown", "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, app.Paths.DataDir, health["data_dir"])
}

func TestApplication_StartStop(t *testing.T) {
	app, err := NewApplication(testConfig(t), createTestLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, app.Start(ctx, cancel))
	require.NoError(t, app.Stop(ctx))

	// a stopped server refuses to serve again
	assert.ErrorIs(t, app.Server.ListenAndServe(), http.ErrServerClosed)
}

func TestApplication_StartAddressInUse(t *testing.T) {
	occupied := httptest.NewServer(http.NotFoundHandler())
	defer occupied.Close()

	app, err := NewApplication(testConfig(t), createTestLogger())
	require.NoError(t, err)
	app.Server.Addr = occupied.Listener.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, app.Start(ctx, cancel))
}

func TestApplication_performStartupHealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, app *Application)
		wantErr string
	}{
		{
			name:   "healthy",
			mutate: func(t *testing.T, app *Application) {},
		},
		{
			name: "missing data dir",
			mutate: func(t *testing.T, app *Application) {
				app.Paths.DataDir = filepath.Join(t.TempDir(), "missing")
			},
			wantErr: "data directory not found",
		},
		{
			name: "output dir not writable",
			mutate: func(t *testing.T, app *Application) {
				app.Paths.OutputDir = filepath.Join(t.TempDir(), "missing", "out")
			},
			wantErr: "output directory not writable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApplication(testConfig(t), createTestLogger())
			require.NoError(t, err)
			tt.mutate(t, app)

			err = app.performStartupHealthCheck(context.Background())
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
