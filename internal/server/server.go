// Package server exposes the forecast analysis over HTTP. The transport
// layer carries no analysis logic of its own.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"goalcast/internal/config"
	"goalcast/internal/forecast"
	"goalcast/internal/goaltext"
	"goalcast/internal/ingest"
	"goalcast/internal/model"
)

const maxUploadBytes = 10 << 20

// Server is the goalcast HTTP API.
type Server struct {
	cfg        config.Config
	forecaster *forecast.Forecaster
	logger     *logrus.Logger
}

// New returns a Server around the given forecaster.
func New(cfg config.Config, forecaster *forecast.Forecaster, logger *logrus.Logger) *Server {
	return &Server{cfg: cfg, forecaster: forecaster, logger: logger}
}

// Handler builds the full HTTP handler: routes, request IDs, request
// logging, and CORS for the browser frontend.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.loggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/forecast/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/goal/parse", s.handleParseGoal).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(r)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.WithField("addr", s.cfg.Server.Addr).Info("goalcast API listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleAnalyze accepts a multipart form with a "file" CSV part and a
// "goal" JSON part, and responds with the ForecastResult.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.clientError(w, r, http.StatusBadRequest, "expected multipart form with file and goal parts", err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.clientError(w, r, http.StatusBadRequest, "missing file part", err)
		return
	}
	defer file.Close()

	var goal model.Goal
	goalJSON := r.FormValue("goal")
	if goalJSON == "" {
		s.clientError(w, r, http.StatusBadRequest, "missing goal part", nil)
		return
	}
	if err := json.Unmarshal([]byte(goalJSON), &goal); err != nil {
		s.clientError(w, r, http.StatusBadRequest, "malformed goal JSON", err)
		return
	}

	now := time.Now()
	txns, err := ingest.ReadTransactions(file, now)
	if err != nil {
		s.clientError(w, r, http.StatusBadRequest, "malformed transaction CSV", err)
		return
	}

	result, err := s.forecaster.Analyze(r.Context(), txns, goal, now)
	if err != nil {
		if errors.Is(err, forecast.ErrGoalResolution) {
			s.clientError(w, r, http.StatusUnprocessableEntity, "goal could not be resolved", err)
			return
		}
		s.logger.WithError(err).WithField("request_id", requestID(r)).Error("forecast analysis failed")
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, r, result)
}

type parseGoalRequest struct {
	Text string `json:"text"`
}

type parseGoalResponse struct {
	TargetAmount     float64 `json:"targetAmount"`
	MonthsToDeadline int     `json:"monthsToDeadline"`
	Deadline         string  `json:"deadline"`
}

// handleParseGoal previews what the goal text parser extracts.
func (s *Server) handleParseGoal(w http.ResponseWriter, r *http.Request) {
	var req parseGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.clientError(w, r, http.StatusBadRequest, "malformed request body", err)
		return
	}

	parsed, err := goaltext.Parse(req.Text, time.Now())
	if err != nil {
		s.clientError(w, r, http.StatusUnprocessableEntity, "goal text could not be parsed", err)
		return
	}

	s.writeJSON(w, r, parseGoalResponse{
		TargetAmount:     parsed.TargetAmount,
		MonthsToDeadline: parsed.MonthsToDeadline,
		Deadline:         parsed.Deadline.Format("2006-01-02"),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID(r)).Error("encode response")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) clientError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	entry := s.logger.WithFields(logrus.Fields{
		"request_id": requestID(r),
		"status":     status,
	})
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
