package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSanitizeSite(t *testing.T) {
	tests := map[string]string{
		"https://Example.COM/contact": "example.com",
		"example.org/about":           "example.org",
		"http://":                     "unknown",
		"":                            "unknown",
	}
	for in, want := range tests {
		if got := SanitizeSite(in); got != want {
			t.Errorf("SanitizeSite(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestObserveURL(t *testing.T) {
	before := testutil.ToFloat64(extractorEmailsTotal)
	ObserveURL("https://metrics.example.com/a", StatusOK, 3)
	ObserveURL("https://metrics.example.com/b", StatusFailed, 0)

	if val := testutil.ToFloat64(extractorURLsTotal.WithLabelValues("metrics.example.com", StatusOK)); val != 1 {
		t.Errorf("expected one ok URL, got %f", val)
	}
	if val := testutil.ToFloat64(extractorURLsTotal.WithLabelValues("metrics.example.com", StatusFailed)); val != 1 {
		t.Errorf("expected one failed URL, got %f", val)
	}
	if val := testutil.ToFloat64(extractorEmailsTotal) - before; val != 3 {
		t.Errorf("expected 3 emails counted, got %f", val)
	}
}
