package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"pulsecheck-backend/internal/models"
)

// FeedbackStore is the slice of the repository the handlers need.
type FeedbackStore interface {
	Insert(ctx context.Context, record *models.FeedbackRecord) error
	ListAll(ctx context.Context) ([]models.FeedbackRecord, error)
}

// Embedder generates a fixed-dimension vector for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Summarizer produces a bounded free-text summary for a prompt.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
