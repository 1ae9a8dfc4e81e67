package handlers

import (
	"context"
	"time"

	"pulsecheck-backend/internal/email"
	"pulsecheck-backend/internal/models"

	"github.com/rs/zerolog"
)

var testLog = zerolog.Nop()

type fakeStore struct {
	records   []models.FeedbackRecord
	insertErr error
	listErr   error
	inserted  []*models.FeedbackRecord
}

func (s *fakeStore) Insert(ctx context.Context, record *models.FeedbackRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	record.InsertedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.inserted = append(s.inserted, record)
	return nil
}

func (s *fakeStore) ListAll(ctx context.Context) ([]models.FeedbackRecord, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

type fakeEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return e.vec, nil
}

type fakeSummarizer struct {
	text       string
	err        error
	calls      int
	lastPrompt string
}

func (s *fakeSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

type fakeSender struct {
	err  error
	sent []email.Message
}

func (s *fakeSender) Send(ctx context.Context, msg email.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}
