package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JakeFAU/email-extractor/internal/export"
)

type extractOptions struct {
	urls      string
	domain    string
	outputDir string
	csv       bool
}

// newExtractCmd creates the 'extract' subcommand, a one-shot batch run.
func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract [url...]",
		Short: "Extracts email addresses from a batch of URLs",
		Long: `Fetches every URL in --urls (comma-separated) plus any positional arguments,
in order, and prints the email addresses found one per line. Skipped URLs and
fetch failures are reported on stderr without stopping the batch.`,
		Example: `  email-extractor extract --urls "https://example.com, https://example.org" --domain example.com
  email-extractor extract https://example.com --csv --output-dir ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.urls, "urls", "", "comma-separated website URLs")
	cmd.Flags().StringVar(&opts.domain, "domain", "", "only keep emails ending with @<domain>")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory to write "+export.FileName+" into")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "print results as CSV")
	return cmd
}

func runExtract(cmd *cobra.Command, opts *extractOptions, args []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	raw := joinURLArgs(opts.urls, args)
	run, err := appInstance.GetService().Extract(cmd.Context(), raw, opts.domain)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	result := run.Result()
	for _, notice := range result.Notices {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", notice.Level, notice.Message)
	}
	if result.Empty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "No email addresses found on the provided websites.")
	}

	data, err := export.CSV(run.Emails)
	if err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	if err := printEmails(cmd.OutOrStdout(), run.Emails, data, opts.csv); err != nil {
		return err
	}

	if opts.outputDir == "" && appInstance.GetConfig().Export.OutputDir == "" {
		return nil
	}
	store, err := appInstance.ExportStore(opts.outputDir)
	if err != nil {
		return err
	}
	location, err := store.PutObject(cmd.Context(), export.FileName, export.ContentType, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	logger.Info("export written", zap.String("run_id", run.ID), zap.String("location", location))
	return nil
}

// joinURLArgs appends positional URLs to the --urls list.
func joinURLArgs(flagValue string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	if strings.TrimSpace(flagValue) != "" {
		parts = append(parts, flagValue)
	}
	parts = append(parts, args...)
	return strings.Join(parts, ",")
}

func printEmails(w io.Writer, emails []string, csvData []byte, asCSV bool) error {
	if asCSV {
		if _, err := w.Write(csvData); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	for _, e := range emails {
		if _, err := fmt.Fprintln(w, e); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
