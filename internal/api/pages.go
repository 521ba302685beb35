package api

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/email-extractor/internal/export"
	"github.com/JakeFAU/email-extractor/internal/harvest"
)

const (
	promptNoURLs     = "Please enter website URLs."
	messageNoResults = "No email addresses found on the provided websites."
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData feeds templates/page.html.
type pageData struct {
	URLs         string
	DomainFilter string
	Prompt       string
	Run          *harvest.Run
	Emails       []string
	Warnings     []harvest.Notice
	Errors       []harvest.Notice
	ExportURL    string
	ExportName   string
	NoResults    string
}

func newRunPage(run harvest.Run, rawURLs string) pageData {
	result := run.Result()
	return pageData{
		URLs:         rawURLs,
		DomainFilter: run.DomainFilter,
		Run:          &run,
		Emails:       result.Emails,
		Warnings:     result.Warnings(),
		Errors:       result.Errors(),
		ExportURL:    exportPath(run.ID),
		ExportName:   export.FileName,
		NoResults:    messageNoResults,
	}
}

func (s *Server) showForm(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusOK, pageData{})
}

func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, pageData{Prompt: "Could not read the submitted form."})
		return
	}
	rawURLs := r.PostForm.Get("urls")
	filter := r.PostForm.Get("domain_filter")

	run, err := s.service.Extract(batchContext(r), rawURLs, filter)
	switch {
	case errors.Is(err, harvest.ErrNoURLs):
		s.renderPage(w, http.StatusBadRequest, pageData{
			URLs:         rawURLs,
			DomainFilter: filter,
			Prompt:       promptNoURLs,
		})
		return
	case err != nil:
		s.logger.Error("extraction failed", zap.Error(err), zap.String("request_id", requestID(r.Context())))
		s.renderPage(w, http.StatusInternalServerError, pageData{
			URLs:         rawURLs,
			DomainFilter: filter,
			Prompt:       "Extraction failed, please try again.",
		})
		return
	}
	s.renderPage(w, http.StatusOK, newRunPage(run, rawURLs))
}

func (s *Server) showRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r, s.renderNotFound)
	if !ok {
		return
	}
	s.renderPage(w, http.StatusOK, newRunPage(run, strings.Join(run.URLs, ", ")))
}

func (s *Server) exportRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r, s.writeError)
	if !ok {
		return
	}
	data, err := export.CSV(run.Emails)
	if err != nil {
		s.logger.Error("render csv failed", zap.Error(err), zap.String("run_id", run.ID))
		s.writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	w.Header().Set("Content-Type", export.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Warn("write csv failed", zap.Error(err), zap.String("run_id", run.ID))
	}
}

func (s *Server) renderNotFound(w http.ResponseWriter, status int, msg string) {
	s.renderPage(w, status, pageData{Prompt: msg})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "page", data); err != nil {
		s.logger.Error("render page failed", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("write page failed", zap.Error(err))
	}
}
