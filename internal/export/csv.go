// Package export renders extraction results as downloadable CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Download metadata for the exported file.
const (
	FileName    = "extracted_emails.csv"
	ContentType = "text/csv"
	Header      = "Email"
)

// WriteCSV writes a single "Email" column with one row per address, in order.
func WriteCSV(w io.Writer, emails []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{Header}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range emails {
		if err := cw.Write([]string{e}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSV returns the UTF-8 encoded CSV document for emails.
func CSV(emails []string) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, emails); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
