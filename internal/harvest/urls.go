package harvest

import (
	"errors"
	"strings"
)

// ErrNoURLs is returned when the caller supplied no URLs at all.
var ErrNoURLs = errors.New("no URLs supplied")

// ParseURLList splits a comma-separated URL list and trims each candidate.
// Empty candidates are kept; the engine reports them as invalid.
func ParseURLList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoURLs
	}
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		urls = append(urls, strings.TrimSpace(p))
	}
	return urls, nil
}

// HasHTTPScheme reports whether rawURL starts with http:// or https://.
func HasHTTPScheme(rawURL string) bool {
	return strings.HasPrefix(rawURL, "http://") || strings.HasPrefix(rawURL, "https://")
}
