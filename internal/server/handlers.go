package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"WordFreq/internal/analysis"
	"WordFreq/internal/document"
	"WordFreq/internal/frequency"
	"WordFreq/internal/session"
	"WordFreq/internal/timer"
)

// analyzeTimeout bounds how long a request waits for an analysis.
const analyzeTimeout = 60 * time.Second

// Handler holds HTTP handlers for the WordFreq API.
type Handler struct {
	mgr          *session.Manager
	analyzerName string
	analyzer     analysis.Analyzer
	loadRoot     string
	logger       *slog.Logger
}

// NewHandler creates a Handler backed by mgr. One-shot analyses use a.
// Files loaded by clients must lie under loadRoot; an empty loadRoot allows
// any path.
func NewHandler(mgr *session.Manager, name string, a analysis.Analyzer, loadRoot string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mgr: mgr, analyzerName: name, analyzer: a, loadRoot: loadRoot, logger: logger}
}

// RegisterRoutes registers all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Session lifecycle.
	mux.HandleFunc("GET /sessions", h.handleListSessions)
	mux.HandleFunc("POST /sessions", h.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", h.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", h.handleDeleteSession)

	// Text input.
	mux.HandleFunc("PUT /sessions/{id}/text", h.handleSetText)
	mux.HandleFunc("POST /sessions/{id}/load", h.handleLoad)

	// Analysis.
	mux.HandleFunc("POST /sessions/{id}/analyze", h.handleAnalyze)
	mux.HandleFunc("GET /sessions/{id}/words", h.handleWords)
	mux.HandleFunc("GET /sessions/{id}/words/{word}", h.handleWord)
	mux.HandleFunc("POST /analyze", h.handleAnalyzeText)

	// Typing timer.
	mux.HandleFunc("POST /sessions/{id}/timer/start", h.handleTimerStart)
	mux.HandleFunc("POST /sessions/{id}/timer/stop", h.handleTimerStop)
}

// session resolves the {id} path value, writing a 404 when it is unknown.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.mgr.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return s, true
}

// --- Session Lifecycle ---

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := h.mgr.List()

	infos := make([]map[string]interface{}, 0, len(ids))
	for _, id := range ids {
		s, err := h.mgr.Get(id)
		if err != nil {
			continue
		}
		infos = append(infos, s.Info())
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": infos,
	})
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.mgr.Create()
	writeJSON(w, http.StatusCreated, map[string]string{
		"status": "created",
		"id":     s.ID,
	})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Info())
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.mgr.Delete(id); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
		"id":     id,
	})
}

// --- Text Input ---

func (h *Handler) handleSetText(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.SetText(req.Text)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "updated",
		"text_bytes": len(req.Text),
	})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Path string `json:"path"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	path := req.Path
	if h.loadRoot != "" {
		resolved, err := document.Within(h.loadRoot, req.Path)
		if err != nil {
			if errors.Is(err, document.ErrOutsideRoot) {
				h.logger.Warn("load outside root refused", "session", s.ID, "path", req.Path)
				writeError(w, http.StatusForbidden, err.Error())
				return
			}
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		path = resolved
	}

	if err := s.Load(path); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "load failed, previous text kept: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "loaded",
		"text_bytes": len(s.Text()),
	})
}

// --- Analysis ---

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	topK, err := queryInt(r, "top_k")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), analyzeTimeout)
	defer cancel()

	res := <-s.AnalyzeAsync(ctx)
	if res.Err != nil {
		writeError(w, http.StatusServiceUnavailable, "analysis interrupted: "+res.Err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysisResponse(res.Analysis, res.Analysis.Entries.Top(topK)))
}

func (h *Handler) handleWords(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	topK, err := queryInt(r, "top_k")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	words, analyzed := s.Words(r.URL.Query().Get("prefix"), topK)
	if !analyzed {
		writeError(w, http.StatusConflict, "session has not been analyzed")
		return
	}
	last := s.Last()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"analysis_id": last.ID,
		"word_count":  last.Total,
		"words":       entriesOrEmpty(words),
	})
}

func (h *Handler) handleWord(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if s.Last() == nil {
		writeError(w, http.StatusConflict, "session has not been analyzed")
		return
	}

	word := r.PathValue("word")
	n, found := s.Lookup(word)
	if !found {
		writeError(w, http.StatusNotFound, "word not found: "+word)
		return
	}
	writeJSON(w, http.StatusOK, frequency.Entry{Word: word, Count: n})
}

func (h *Handler) handleAnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		TopK int    `json:"top_k"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.TopK < 0 {
		writeError(w, http.StatusBadRequest, "top_k must be >= 0")
		return
	}

	a := frequency.AnalyzeTop(req.Text, h.analyzerName, h.analyzer, req.TopK)
	writeJSON(w, http.StatusOK, analysisResponse(a, a.Entries))
}

func analysisResponse(a *frequency.Analysis, entries frequency.RankedList) map[string]interface{} {
	return map[string]interface{}{
		"status":      "success",
		"analysis_id": a.ID,
		"analyzer":    a.Analyzer,
		"word_count":  a.Total,
		"distinct":    a.Distinct,
		"fingerprint": strconv.FormatUint(a.Fingerprint, 16),
		"took_ms":     a.Duration.Milliseconds(),
		"words":       entriesOrEmpty(entries),
	}
}

// --- Typing Timer ---

func (h *Handler) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.StartTimer(); err != nil {
		if errors.Is(err, timer.ErrAlreadyRunning) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "started",
	})
}

func (h *Handler) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	res, err := s.StopTimer()
	if err != nil {
		if errors.Is(err, timer.ErrNotRunning) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "stopped",
		"words":      res.Words,
		"elapsed_ms": res.Elapsed.Milliseconds(),
		"wpm":        res.WPM,
	})
}

// --- Helpers ---

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(key + " must be a non-negative integer")
	}
	return n, nil
}

func entriesOrEmpty(l frequency.RankedList) frequency.RankedList {
	if l == nil {
		return frequency.RankedList{}
	}
	return l
}
