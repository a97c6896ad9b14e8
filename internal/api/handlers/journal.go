package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/dayan/internal/journal"
	"github.com/wonny/dayan/pkg/logger"
)

// JournalHandler serves recorded journal entries
type JournalHandler struct {
	store  journal.Store
	loc    *time.Location
	logger *logger.Logger
}

// NewJournalHandler creates a journal handler. A nil store answers 503.
func NewJournalHandler(store journal.Store, loc *time.Location, log *logger.Logger) *JournalHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &JournalHandler{store: store, loc: loc, logger: log}
}

// JournalResponse lists the entries of one civil day
type JournalResponse struct {
	Date    string          `json:"date"`
	Count   int             `json:"count"`
	Entries []journal.Entry `json:"entries"`
}

// GetDay handles GET /api/journal/{date}
func (h *JournalHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Journal is disabled")
		return
	}

	date := mux.Vars(r)["date"]
	day, err := time.ParseInLocation("2006-01-02", date, h.loc)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid date (expected YYYY-MM-DD)")
		return
	}

	entries, err := h.store.ByDate(r.Context(), day)
	if err != nil {
		h.logger.WithError(err).WithField("date", date).Error("Failed to load journal")
		respondError(w, http.StatusInternalServerError, "Failed to load journal")
		return
	}
	if entries == nil {
		entries = []journal.Entry{}
	}

	respondJSON(w, http.StatusOK, JournalResponse{
		Date:    date,
		Count:   len(entries),
		Entries: entries,
	})
}
