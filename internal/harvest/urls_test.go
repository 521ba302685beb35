package harvest

import (
	"errors"
	"testing"
)

func TestParseURLList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr error
	}{
		{name: "empty", raw: "", wantErr: ErrNoURLs},
		{name: "blank", raw: "   \n", wantErr: ErrNoURLs},
		{name: "single", raw: "https://example.com", want: []string{"https://example.com"}},
		{name: "trims", raw: " https://a.com ,\nhttp://b.com ", want: []string{"https://a.com", "http://b.com"}},
		{name: "keeps empty candidates", raw: "https://a.com,,", want: []string{"https://a.com", "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseURLList(tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseURLList(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseURLList(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ParseURLList(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestHasHTTPScheme(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"http://a.com":  true,
		"https://a.com": true,
		"ftp://bad.com": false,
		"HTTP://a.com":  false,
		"a.com":         false,
		"":              false,
	}
	for in, want := range cases {
		if got := HasHTTPScheme(in); got != want {
			t.Errorf("HasHTTPScheme(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	err := &StatusError{URL: "https://a.com", StatusCode: 503}
	if got := err.Error(); got != "GET https://a.com: unexpected status 503 Service Unavailable" {
		t.Fatalf("unexpected message %q", got)
	}
	if IsSuccess(503) || !IsSuccess(204) || IsSuccess(300) {
		t.Fatal("IsSuccess boundaries wrong")
	}
}
