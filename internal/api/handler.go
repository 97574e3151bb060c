package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/alerts"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/core"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/data"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/logger"
	"github.com/Loveleet/live-cloud-lab-live-sub001/internal/service"
)

// Handler wires the log reader, rule book store and autotrade proxy into the
// /api route tree.
type Handler struct {
	reader      *data.LogReader
	store       *alerts.Store
	autotrade   *service.AutotradeClient
	hasFallback bool
}

func NewHandler(reader *data.LogReader, store *alerts.Store, autotrade *service.AutotradeClient, hasFallback bool) *Handler {
	return &Handler{
		reader:      reader,
		store:       store,
		autotrade:   autotrade,
		hasFallback: hasFallback,
	}
}

// Routes builds the /api router.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.Health)

	r.Get("/signal-logs", h.logsHandler(data.SignalLogSpec))
	r.Get("/signal-logs/summary", h.summaryHandler(data.SignalLogSpec))
	r.Get("/bot-event-logs", h.logsHandler(data.BotEventLogSpec))
	r.Get("/bot-event-logs/summary", h.summaryHandler(data.BotEventLogSpec))
	r.Get("/signals/lookup", h.LookupSignals)

	r.Post("/calculate-signals", h.proxyHandler("/api/calculate-signals"))
	r.Post("/trade/execute", h.proxyHandler("/api/execute-trade"))
	r.Post("/trade/hedge", h.proxyHandler("/api/hedge-trade"))
	r.Post("/trade/close", h.proxyHandler("/api/close-trade"))
	r.Post("/trade/set-stop", h.proxyHandler("/api/set-stop-price"))

	r.Get("/rulebooks", h.ListRuleBooks)
	r.Get("/rulebooks/{name}", h.GetRuleBook)
	r.Put("/rulebooks/{name}", h.SaveRuleBook)
	r.Delete("/rulebooks/{name}", h.DeleteRuleBook)

	return r
}

// Health reports dependency availability without failing: a down database is
// a degraded state, not an error.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":       true,
		"database": h.reader.Available(),
		"fallback": h.hasFallback,
	})
}

// logsHandler serves one paginated log table. Reader failures with a defined
// fallback never reach here; what does reach here is a genuine query error
// against a required table, reported with its underlying message.
func (h *Handler) logsHandler(spec core.FilterSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := core.ParsePageRequest(spec, r.URL.Query())
		page, err := h.reader.ReadPage(r.Context(), spec, req, r.URL.Path, r.URL.RawQuery)
		if err != nil {
			logger.Error.Printf("read %s: %v", spec.Table, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

func (h *Handler) summaryHandler(spec core.FilterSpec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := core.ParsePageRequest(spec, r.URL.Query())
		summary, err := h.reader.Summarize(r.Context(), spec, req)
		if err != nil {
			logger.Error.Printf("summarize %s: %v", spec.Table, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// LookupSignals requires a symbol list; a missing one is a caller error, not
// something to normalize away.
func (h *Handler) LookupSignals(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("symbols") == "" {
		writeError(w, http.StatusBadRequest, "symbols parameter is required")
		return
	}
	req := core.ParsePageRequest(data.SignalLogSpec, r.URL.Query())
	result, err := h.reader.LookupSignals(r.Context(), req)
	if err != nil {
		logger.Error.Printf("signal lookup: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// proxyHandler forwards a command to the exchange-automation service and
// relays its response, status included.
func (h *Handler) proxyHandler(upstreamPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.autotrade.Configured() {
			writeError(w, http.StatusServiceUnavailable, "autotrade service is not configured")
			return
		}

		var payload map[string]interface{}
		if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				writeError(w, http.StatusBadRequest, "request body must be JSON")
				return
			}
		}

		resp, err := h.autotrade.Forward(r.Context(), upstreamPath, payload)
		if err != nil {
			writeError(w, http.StatusBadGateway, "autotrade service unreachable: "+err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		w.Write(resp.Body)
	}
}

func (h *Handler) ListRuleBooks(w http.ResponseWriter, r *http.Request) {
	books, err := h.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"books": books})
}

func (h *Handler) GetRuleBook(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	book, err := h.store.Get(name)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "rule book not found: "+name)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) SaveRuleBook(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	document, err := io.ReadAll(r.Body)
	if err != nil || len(document) == 0 {
		writeError(w, http.StatusBadRequest, "rule book document is required")
		return
	}

	book, err := h.store.Save(name, document)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, book)
}

func (h *Handler) DeleteRuleBook(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(chi.URLParam(r, "name")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"ok": false, "message": message})
}
