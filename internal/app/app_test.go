package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/email-extractor/internal/app"
	"github.com/JakeFAU/email-extractor/internal/config"
	"github.com/JakeFAU/email-extractor/internal/harvest"
)

type staticFetcher struct {
	body string
}

func (s staticFetcher) Fetch(_ context.Context, req harvest.FetchRequest) (harvest.FetchResponse, error) {
	return harvest.FetchResponse{URL: req.URL, StatusCode: 200, Body: []byte(s.body)}, nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Development = false

	a, err := app.New(cfg)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.GetLogger())
	assert.NotNil(t, a.GetService())
	assert.Equal(t, cfg.Server.Port, a.GetConfig().Server.Port)
}

func TestNewRejectsBadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logging.Level = "loud"

	_, err := app.New(cfg)
	require.Error(t, err)
}

func TestNewWithFetcherRunsExtraction(t *testing.T) {
	a := app.NewWithFetcher(testConfig(t), zap.NewNop(), staticFetcher{body: `<p>a@example.com</p>`})

	run, err := a.GetService().Extract(context.Background(), "https://example.com", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@example.com"}, run.Emails)
	assert.NotEmpty(t, run.ID)
}

func TestExportStore(t *testing.T) {
	cfg := testConfig(t)
	a := app.NewWithFetcher(cfg, nil, staticFetcher{})

	_, err := a.ExportStore("")
	require.Error(t, err)

	dir := t.TempDir()
	store, err := a.ExportStore(dir)
	require.NoError(t, err)
	uri, err := store.PutObject(context.Background(), "out.csv", "text/csv", strings.NewReader("Email\n"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "file://"))

	cfg.Export.OutputDir = t.TempDir()
	a = app.NewWithFetcher(cfg, nil, staticFetcher{})
	_, err = a.ExportStore("")
	require.NoError(t, err)
}
