// Package server exposes report generation over HTTP.
//
// Routes:
//
//	GET /report?state=AK&from=2012&to=2022  report.pdf as an attachment
//	GET /healthz                            liveness probe
//	GET /metrics                            Prometheus metrics
//
// Generation is serialized through the pipeline runner: a request that
// arrives while a report is being composed gets 409 Conflict.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	errs "github.com/realassist/crimereport/pkg/errors"
	"github.com/realassist/crimereport/pkg/pipeline"
	"github.com/realassist/crimereport/pkg/report"
)

// Server handles report requests.
type Server struct {
	runner   *pipeline.Runner
	template report.Template
	logger   *log.Logger
}

// NewHandler creates the HTTP handler. gatherer may be nil to disable
// /metrics.
func NewHandler(runner *pipeline.Runner, tmpl report.Template, logger *log.Logger, gatherer prometheus.Gatherer) http.Handler {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, template: tmpl, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Get("/report", s.report)
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var target report.MemoryTarget
	res, err := s.runner.Execute(r.Context(), opts, &target)
	if err != nil {
		if res != nil {
			w.Header().Set("X-Report-ID", res.Outcome.ID)
		}
		s.logger.Warn("report request failed", "err", err)
		writeError(w, err)
		return
	}

	name, data := target.Report()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Report-ID", res.Outcome.ID)
	_, _ = w.Write(data)
}

func (s *Server) parseOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	tmpl := s.template
	opts := pipeline.Options{
		Region:   q.Get("state"),
		Refresh:  q.Get("refresh") == "true",
		Template: &tmpl,
		Logger:   s.logger,
	}

	var err error
	if opts.From, err = intParam(q.Get("from")); err != nil {
		return opts, errs.New(errs.ErrCodeInvalidRange, "from must be a year")
	}
	if opts.To, err = intParam(q.Get("to")); err != nil {
		return opts, errs.New(errs.ErrCodeInvalidRange, "to must be a year")
	}
	return opts, opts.ValidateAndSetDefaults()
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps error codes to HTTP statuses.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidRegion, errs.ErrCodeInvalidRange:
		return http.StatusBadRequest
	case errs.ErrCodeBusy:
		return http.StatusConflict
	case errs.ErrCodeFetch:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	msg := errs.UserMessage(err)
	switch code {
	case errs.ErrCodeCapture, errs.ErrCodeComposition:
		msg = report.StatusFailed
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(code))
	_ = json.NewEncoder(w).Encode(errorResponse{Code: code, Message: msg})
}
