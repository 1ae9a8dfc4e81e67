package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"

	"pulsecheck-backend/internal/email"
	"pulsecheck-backend/internal/models"
	"pulsecheck-backend/internal/validate"

	"github.com/rs/zerolog"
)

type FeedbackHandler struct {
	store    FeedbackStore
	embedder Embedder
	sender   email.Sender
	log      zerolog.Logger
}

func NewFeedbackHandler(store FeedbackStore, embedder Embedder, sender email.Sender, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		store:    store,
		embedder: embedder,
		sender:   sender,
		log:      log,
	}
}

type SubmitFeedbackRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	NPSScore *int   `json:"npsScore" validate:"required,min=0,max=10"`
	Feedback string `json:"feedback" validate:"required,max=280"`
}

// --- POST /api/feedback ---
//
// Validate, embed, persist, then email a receipt. The record is the source
// of truth: a failed receipt email never fails the submission.

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Feedback = strings.TrimSpace(req.Feedback)

	if fieldErrs := validate.Struct(req); fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrs})
		return
	}

	embedding, err := h.embedder.Embed(r.Context(), req.Feedback)
	if err != nil {
		h.log.Error().Err(err).Msg("embedding generation failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to submit feedback."})
		return
	}

	record := &models.FeedbackRecord{
		Name:      req.Name,
		Email:     req.Email,
		NPSScore:  *req.NPSScore,
		Feedback:  req.Feedback,
		Embedding: embedding,
	}
	if err := h.store.Insert(r.Context(), record); err != nil {
		h.log.Error().Err(err).Msg("failed to persist feedback")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to submit feedback."})
		return
	}

	// Best-effort receipt: the record is already durable.
	if err := h.sender.Send(r.Context(), confirmationEmail(req.Name, req.Email)); err != nil {
		h.log.Warn().Err(err).Str("email", req.Email).Msg("confirmation email failed after persist")
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Feedback submitted successfully."})
}

func confirmationEmail(name, to string) email.Message {
	return email.Message{
		To:      to,
		Subject: "Thank you for your feedback!",
		HTML:    fmt.Sprintf("<p>Hi %s,</p><p>Thank you for sharing your feedback!</p>", html.EscapeString(name)),
	}
}
