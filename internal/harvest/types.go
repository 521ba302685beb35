// Package harvest defines the batch extraction flow and the types shared across subsystems.
package harvest

import (
	"fmt"
	"net/http"
	"time"
)

// Level classifies a per-URL notice.
type Level string

// Notice levels reported alongside the extracted emails.
const (
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice reports a skipped or failed URL. It never aborts the batch.
type Notice struct {
	URL     string `json:"url"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Result is the outcome of one batch: emails in URL order then document order, duplicates kept.
type Result struct {
	Emails  []string `json:"emails"`
	Notices []Notice `json:"notices"`
}

// Empty reports whether the batch produced no emails at all.
func (r Result) Empty() bool {
	return len(r.Emails) == 0
}

// Warnings returns the notices for skipped URLs.
func (r Result) Warnings() []Notice {
	return r.filterNotices(LevelWarning)
}

// Errors returns the notices for URLs that failed to fetch or parse.
func (r Result) Errors() []Notice {
	return r.filterNotices(LevelError)
}

func (r Result) filterNotices(level Level) []Notice {
	var out []Notice
	for _, n := range r.Notices {
		if n.Level == level {
			out = append(out, n)
		}
	}
	return out
}

// Run is a stored batch, kept so the presentation layer can render or export it later.
type Run struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	URLs         []string  `json:"urls"`
	DomainFilter string    `json:"domain_filter,omitempty"`
	Emails       []string  `json:"emails"`
	Notices      []Notice  `json:"notices"`
}

// FetchRequest captures everything needed to fetch a URL.
type FetchRequest struct {
	URL     string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}
