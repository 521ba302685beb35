package harvest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JakeFAU/email-extractor/internal/email"
	"github.com/JakeFAU/email-extractor/internal/metrics"
)

// Engine runs a batch of URLs through fetch and extraction, one URL at a time.
type Engine struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewEngine wires an Engine around a Fetcher.
func NewEngine(fetcher Fetcher, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Run processes urls in order and returns every email found, keeping duplicates.
// URLs without an http(s) scheme are skipped with a warning; fetch and parse failures are
// reported as errors. Neither stops the batch. Notices are returned to the caller, so
// per-URL outcomes are only logged at debug level.
func (e *Engine) Run(ctx context.Context, urls []string, filter string) Result {
	result := Result{Emails: []string{}}
	for _, u := range urls {
		if !HasHTTPScheme(u) {
			e.logger.Debug("skipping invalid URL", zap.String("url", u))
			metrics.ObserveURL(u, metrics.StatusSkipped, 0)
			result.Notices = append(result.Notices, Notice{
				URL:     u,
				Level:   LevelWarning,
				Message: fmt.Sprintf("Invalid URL: %s. Please enter a valid URL starting with http:// or https://", u),
			})
			continue
		}

		emails, err := e.extractOne(ctx, u, filter)
		if err != nil {
			e.logger.Debug("extraction failed", zap.String("url", u), zap.Error(err))
			metrics.ObserveURL(u, metrics.StatusFailed, 0)
			result.Notices = append(result.Notices, Notice{
				URL:     u,
				Level:   LevelError,
				Message: fmt.Sprintf("Error extracting emails from %s: %v", u, err),
			})
			continue
		}
		e.logger.Debug("extracted emails", zap.String("url", u), zap.Int("count", len(emails)))
		metrics.ObserveURL(u, metrics.StatusOK, len(emails))
		result.Emails = append(result.Emails, emails...)
	}
	e.logger.Info("batch completed",
		zap.Int("urls", len(urls)),
		zap.Int("emails", len(result.Emails)),
		zap.Int("warnings", len(result.Warnings())),
		zap.Int("errors", len(result.Errors())),
	)
	return result
}

func (e *Engine) extractOne(ctx context.Context, u string, filter string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch canceled: %w", err)
	}
	resp, err := e.fetcher.Fetch(ctx, FetchRequest{URL: u})
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode != 0 && !IsSuccess(resp.StatusCode) {
		return nil, &StatusError{URL: u, StatusCode: resp.StatusCode}
	}
	emails, err := email.Extract(resp.Body, filter)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return emails, nil
}
