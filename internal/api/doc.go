// Package api hosts the HTTP presentation layer for the extractor. Routes:
//   - GET / renders the URL form; POST /extract runs a batch and renders the results.
//   - GET /runs/{run_id} re-renders a stored run; GET /runs/{run_id}/export.csv downloads it.
//   - POST /v1/extractions and GET /v1/extractions/{run_id} expose the same flow as JSON.
//   - GET /healthz and /readyz for probes, GET /metrics for Prometheus scraping.
package api
