package harvest_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JakeFAU/email-extractor/internal/harvest"
)

// MockFetcher mocks the harvest.Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

// Fetch satisfies the harvest.Fetcher interface for the mock.
func (m *MockFetcher) Fetch(ctx context.Context, req harvest.FetchRequest) (harvest.FetchResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(harvest.FetchResponse), args.Error(1)
}

func page(url, body string) harvest.FetchResponse {
	return harvest.FetchResponse{URL: url, StatusCode: 200, Body: []byte(body)}
}

func TestEngineRunCollectsAcrossURLs(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://one.test"}).
		Return(page("https://one.test", `<p>a@one.com b@one.com</p>`), nil)
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "http://two.test"}).
		Return(page("http://two.test", `<p>a@one.com</p><script>x@two.com</script>`), nil)

	engine := harvest.NewEngine(fetcher, zap.NewNop())
	result := engine.Run(context.Background(), []string{"https://one.test", "http://two.test"}, "")

	assert.Equal(t, []string{"a@one.com", "b@one.com", "a@one.com"}, result.Emails)
	assert.Empty(t, result.Notices)
	assert.False(t, result.Empty())
	fetcher.AssertExpectations(t)
}

func TestEngineRunSkipsInvalidScheme(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	engine := harvest.NewEngine(fetcher, nil)
	result := engine.Run(context.Background(), []string{"ftp://bad.com"}, "")

	assert.Empty(t, result.Emails)
	assert.True(t, result.Empty())
	require.Len(t, result.Warnings(), 1)
	assert.Empty(t, result.Errors())
	assert.Equal(t, "ftp://bad.com", result.Notices[0].URL)
	assert.Contains(t, result.Notices[0].Message, "Invalid URL: ftp://bad.com")
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestEngineRunContinuesAfterFetchError(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://down.test"}).
		Return(harvest.FetchResponse{}, errors.New("connection refused"))
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://up.test"}).
		Return(page("https://up.test", `<p>c@y.com</p>`), nil)

	engine := harvest.NewEngine(fetcher, zap.NewNop())
	result := engine.Run(context.Background(), []string{"https://down.test", "https://up.test"}, "")

	assert.Equal(t, []string{"c@y.com"}, result.Emails)
	require.Len(t, result.Errors(), 1)
	assert.Equal(t, "https://down.test", result.Errors()[0].URL)
	assert.Contains(t, result.Errors()[0].Message, "connection refused")
	assert.Empty(t, result.Warnings())
}

func TestEngineRunTreatsNonSuccessStatusAsError(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).
		Return(harvest.FetchResponse{StatusCode: 404, Body: []byte(`<p>a@x.com</p>`)}, nil)

	engine := harvest.NewEngine(fetcher, zap.NewNop())
	result := engine.Run(context.Background(), []string{"https://gone.test"}, "")

	assert.Empty(t, result.Emails)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0].Message, "unexpected status 404")
}

func TestEngineRunAppliesDomainFilter(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything).
		Return(page("https://mixed.test", `<p>a@example.com</p><p>b@other.com</p>`), nil)

	engine := harvest.NewEngine(fetcher, zap.NewNop())
	result := engine.Run(context.Background(), []string{"https://mixed.test"}, "example.com")

	assert.Equal(t, []string{"a@example.com"}, result.Emails)
}

func TestEngineRunMixedBatch(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://a.test"}).
		Return(page("https://a.test", `<p>first@a.com</p>`), nil)
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://b.test"}).
		Return(harvest.FetchResponse{}, errors.New("timeout"))
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://c.test"}).
		Return(page("https://c.test", `<p>last@c.com</p>`), nil)

	urls, err := harvest.ParseURLList("https://a.test, example.com, https://b.test,https://c.test")
	require.NoError(t, err)

	result := harvest.NewEngine(fetcher, zap.NewNop()).Run(context.Background(), urls, "")
	assert.Equal(t, []string{"first@a.com", "last@c.com"}, result.Emails)
	require.Len(t, result.Notices, 2)
	assert.Equal(t, harvest.LevelWarning, result.Notices[0].Level)
	assert.Equal(t, "example.com", result.Notices[0].URL)
	assert.Equal(t, harvest.LevelError, result.Notices[1].Level)
	assert.Equal(t, "https://b.test", result.Notices[1].URL)
}

func TestEngineRunCanceledContext(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := harvest.NewEngine(fetcher, zap.NewNop()).Run(ctx, []string{"https://a.test"}, "")
	assert.Empty(t, result.Emails)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0].Message, "context canceled")
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestEngineRunLogsOneSummaryAtInfo(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://down.test"}).
		Return(harvest.FetchResponse{}, errors.New("dial tcp: connection refused"))
	fetcher.On("Fetch", mock.Anything, harvest.FetchRequest{URL: "https://up.test"}).
		Return(page("https://up.test", `<p>hi@up.test</p>`), nil)

	core, logs := observer.New(zapcore.InfoLevel)
	engine := harvest.NewEngine(fetcher, zap.New(core))
	result := engine.Run(context.Background(), []string{"ftp://bad.com", "https://down.test", "https://up.test"}, "")

	require.Len(t, result.Notices, 2)
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "batch completed", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 3, fields["urls"])
	assert.EqualValues(t, 1, fields["emails"])
	assert.EqualValues(t, 1, fields["warnings"])
	assert.EqualValues(t, 1, fields["errors"])
}
