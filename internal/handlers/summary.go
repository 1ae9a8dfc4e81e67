package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pulsecheck-backend/internal/nps"

	"github.com/rs/zerolog"
)

type SummaryHandler struct {
	store      FeedbackStore
	summarizer Summarizer
	log        zerolog.Logger
}

func NewSummaryHandler(store FeedbackStore, summarizer Summarizer, log zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		store:      store,
		summarizer: summarizer,
		log:        log,
	}
}

// --- GET /api/summary ---

func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read feedback records")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to summarize feedback."})
		return
	}

	scores := make([]int, len(records))
	texts := make([]string, len(records))
	for i, rec := range records {
		scores[i] = rec.NPSScore
		texts[i] = rec.Feedback
	}

	agg := nps.Compute(scores)
	if agg.Total == 0 {
		writeJSON(w, http.StatusOK, map[string]string{
			"summary": "No feedback has been submitted yet.",
			"nps":     agg.ScoreString(),
		})
		return
	}

	prompt := "Summarize the following feedback:\n" + strings.Join(texts, "\n")
	summary, err := h.summarizer.Summarize(r.Context(), prompt)
	if err != nil {
		h.log.Error().Err(err).Msg("summary generation failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to summarize feedback."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"summary": summary,
		"nps":     agg.ScoreString(),
	})
}

// --- GET /api/download-csv ---

func (h *SummaryHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to read feedback records")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to export feedback."})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="feedback.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"name", "email", "nps_score", "feedback", "inserted_at"})
	for _, rec := range records {
		_ = cw.Write([]string{
			rec.Name,
			rec.Email,
			strconv.Itoa(rec.NPSScore),
			rec.Feedback,
			rec.InsertedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		// Headers are already out; all we can do is log.
		h.log.Error().Err(err).Msg("failed to write CSV response")
	}
}
