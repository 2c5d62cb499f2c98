// Package api exposes mounted pages over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"MonitorBoard/internal/board"
	"MonitorBoard/internal/recorder"
)

// Server is the view API.
type Server struct {
	r     chi.Router
	log   *slog.Logger
	board *board.Board
	rec   recorder.Recorder
	opts  ServerOpts
	srv   *http.Server
}

type ServerOpts struct {
	Logger         *slog.Logger
	Board          *board.Board
	Recorder       recorder.Recorder
	Port           int
	AllowedOrigins []string
}

// NewServer creates the API server with its routes loaded.
func NewServer(opts ServerOpts) (*Server, error) {
	if opts.Board == nil {
		return nil, errors.New("api: board is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Recorder == nil {
		opts.Recorder = recorder.NewNoopRecorder()
	}
	s := &Server{
		log:   opts.Logger,
		board: opts.Board,
		rec:   opts.Recorder,
		opts:  opts,
	}
	s.routes()
	return s, nil
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              ":" + strconv.Itoa(s.opts.Port),
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api server listening", "addr", "http://localhost"+s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.log.Info("api server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}

// ServeHTTP lets the server be used as a plain handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

// JSON writes data with the given status code.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Fprintf(w, "%s", err.Error())
	}
}

// ERROR writes {"error": ...} with the given status code.
func ERROR(w http.ResponseWriter, statusCode int, err error) {
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		fmt.Fprintf(w, "%s", err.Error())
	}
}
