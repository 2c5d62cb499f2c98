package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"MonitorBoard/internal/board"
	"MonitorBoard/internal/query"
	"MonitorBoard/internal/scheduler"
)

// searchRequest is either structured filters or free text in q.
type searchRequest struct {
	Q *string `json:"q,omitempty"`
	query.FilterSet
}

func (s *Server) handlePagesGet(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]any{"pages": board.Kinds})
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	id, err := s.board.Mount(chi.URLParam(r, "page"))
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusCreated, map[string]string{"session": id})
}

func (s *Server) handleSessionsList(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, s.board.Sessions())
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	page, err := s.board.Render(chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

func (s *Server) handleSessionSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		ERROR(w, http.StatusBadRequest, fmt.Errorf("decode search: %w", err))
		return
	}

	var err error
	if req.Q != nil {
		err = s.board.SearchText(id, *req.Q, req.FilterSet)
	} else {
		err = s.board.Search(id, req.FilterSet)
	}
	s.respondWithPage(w, id, err)
}

func (s *Server) handleSessionRefresh(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondWithPage(w, id, s.board.Refresh(id))
}

func (s *Server) handleSessionRetry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondWithPage(w, id, s.board.Retry(id))
}

func (s *Server) handleSessionDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.board.Unmount(chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 100
	}
	points, err := s.rec.History(limit)
	if err != nil {
		s.log.Error("read history", "error", err)
		ERROR(w, http.StatusInternalServerError, err)
		return
	}
	JSON(w, http.StatusOK, points)
}

// respondWithPage renders the session after an action. Fetch failures are
// part of the rendered page, so only lifecycle errors reach fail.
func (s *Server) respondWithPage(w http.ResponseWriter, id string, err error) {
	if err != nil {
		s.fail(w, err)
		return
	}
	page, err := s.board.Render(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	JSON(w, http.StatusOK, page)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrUnknownPage), errors.Is(err, board.ErrUnknownSession):
		ERROR(w, http.StatusNotFound, err)
	case errors.Is(err, scheduler.ErrStopped):
		ERROR(w, http.StatusGone, err)
	case errors.Is(err, scheduler.ErrNotMounted):
		ERROR(w, http.StatusConflict, err)
	default:
		s.log.Error("request failed", "error", err)
		ERROR(w, http.StatusInternalServerError, err)
	}
}
