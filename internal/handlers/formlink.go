package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"pulsecheck-backend/internal/email"
	"pulsecheck-backend/internal/token"
	"pulsecheck-backend/internal/validate"

	"github.com/rs/zerolog"
)

type FormLinkHandler struct {
	tokens  *token.Service
	sender  email.Sender
	baseURL string
	log     zerolog.Logger
}

// NewFormLinkHandler creates the handler. baseURL may be empty, in which
// case the link host is derived from the incoming request.
func NewFormLinkHandler(tokens *token.Service, sender email.Sender, baseURL string, log zerolog.Logger) *FormLinkHandler {
	return &FormLinkHandler{
		tokens:  tokens,
		sender:  sender,
		baseURL: baseURL,
		log:     log,
	}
}

type GenerateFormLinkRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

// --- POST /api/generate-form-link ---

func (h *FormLinkHandler) GenerateFormLink(w http.ResponseWriter, r *http.Request) {
	var req GenerateFormLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if fieldErrs := validate.Struct(req); fieldErrs != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrs})
		return
	}

	tok, err := h.tokens.Issue(req.Name, req.Email)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to sign form token")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate form link"})
		return
	}

	formURL := fmt.Sprintf("%s/?token=%s", h.resolveBaseURL(r), tok)

	// Unlike the feedback receipt, delivery failure here is fatal: nothing
	// durable was written and an undelivered link is useless.
	if err := h.sender.Send(r.Context(), formLinkEmail(req.Name, req.Email, formURL)); err != nil {
		h.log.Error().Err(err).Str("email", req.Email).Msg("failed to send form link")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to generate form link"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Form link generated and sent to email",
		"url":     formURL,
	})
}

// --- POST /api/verify-token ---

func (h *FormLinkHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req VerifyTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Token is required"})
		return
	}

	identity, err := h.tokens.Verify(req.Token)
	if err != nil {
		if !errors.Is(err, token.ErrInvalidToken) {
			h.log.Error().Err(err).Msg("unexpected token verification failure")
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		return
	}

	writeJSON(w, http.StatusOK, identity)
}

// resolveBaseURL prefers the configured base URL and falls back to the
// scheme and host of the incoming request. Gmail and Outlook rewrite
// plain-http links, so X-Forwarded-Proto matters behind a proxy.
func (h *FormLinkHandler) resolveBaseURL(r *http.Request) string {
	if h.baseURL != "" {
		return strings.TrimRight(h.baseURL, "/")
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

func formLinkEmail(name, to, formURL string) email.Message {
	return email.Message{
		To:      to,
		Subject: "Your Feedback Form Link",
		HTML: fmt.Sprintf(`
			<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
				<h2>Hello %s,</h2>
				<p>We value your feedback! Please click the link below to share your thoughts with us:</p>
				<p style="margin: 20px 0;">
					<a href="%s"
					   style="background-color: #D55672; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">
						Share Your Feedback
					</a>
				</p>
				<p style="color: #666; font-size: 14px;">This link will expire in 24 hours.</p>
				<p style="color: #666; font-size: 14px;">If the button doesn't work, you can copy and paste this URL into your browser:</p>
				<p style="color: #666; font-size: 14px; word-break: break-all;">%s</p>
			</div>
		`, html.EscapeString(name), formURL, formURL),
	}
}
