package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ivmolchanov/search-gateway/internal/cache"
	"github.com/ivmolchanov/search-gateway/internal/domain"
	"github.com/ivmolchanov/search-gateway/internal/search"
	"github.com/ivmolchanov/search-gateway/internal/service"
)

type Server struct {
	svc     *service.Service
	logger  *zap.Logger
	version string
}

func New(svc *service.Service, logger *zap.Logger, version string) *Server {
	return &Server{svc: svc, logger: logger, version: version}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /search/web", s.handleSearchWeb)
	mux.HandleFunc("POST /search/images", s.handleSearchImages)
	mux.HandleFunc("POST /search/news", s.handleSearchNews)
	mux.HandleFunc("GET /cache/stats", s.handleStats)
	mux.HandleFunc("GET /cache/recent", s.handleRecent)
	mux.HandleFunc("GET /cache/popular", s.handlePopular)
	mux.HandleFunc("DELETE /cache/clear", s.handleClear)
	mux.HandleFunc("GET /health", s.handleHealth)
}

func (s *Server) handleSearchWeb(w http.ResponseWriter, r *http.Request) {
	var req domain.WebRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.svc.SearchWeb(r.Context(), &req)
	if err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchImages(w http.ResponseWriter, r *http.Request) {
	var req domain.ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.svc.SearchImages(r.Context(), &req)
	if err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSearchNews(w http.ResponseWriter, r *http.Request) {
	var req domain.NewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.svc.SearchNews(r.Context(), &req)
	if err != nil {
		s.writeError(w, statusForError(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	records := s.svc.Recent(limit)
	if records == nil {
		records = []cache.HistoryRecord{}
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	hours := queryInt(r, "hours", 24)
	popular := s.svc.Popular(limit, hours)
	if popular == nil {
		popular = []cache.PopularQuery{}
	}
	s.writeJSON(w, http.StatusOK, popular)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("all") == "true" {
		count := s.svc.ClearAll()
		s.writeJSON(w, http.StatusOK, map[string]any{"cleared": count, "scope": "all"})
		return
	}
	removed := s.svc.ClearExpired()
	s.writeJSON(w, http.StatusOK, map[string]any{"cleared": removed, "scope": "expired"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response failed", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func statusForError(err error) int {
	switch {
	case isValidationError(err), errors.Is(err, search.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, search.ErrRateLimited):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrEmptyQuery,
		domain.ErrQueryTooLong,
		domain.ErrInvalidKind,
		domain.ErrInvalidNumResults,
		domain.ErrInvalidStartIndex,
		domain.ErrInvalidSafeSearch,
		domain.ErrInvalidTimeFilter,
		domain.ErrInvalidLanguage,
		domain.ErrInvalidCountry,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func queryInt(r *http.Request, name string, defaultValue int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
