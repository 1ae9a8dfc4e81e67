package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pulsecheck-backend/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(path, body string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return httptest.NewRecorder(), req
}

func TestGenerateFormLink(t *testing.T) {
	tokens := token.NewService("test-secret")
	sender := &fakeSender{}
	h := NewFormLinkHandler(tokens, sender, "https://feedback.example.com", testLog)

	rec, req := postJSON("/api/generate-form-link", `{"name":"Ada Lovelace","email":"Ada@Example.com"}`)
	h.GenerateFormLink(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
		URL     string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Form link generated and sent to email", body.Message)
	assert.True(t, strings.HasPrefix(body.URL, "https://feedback.example.com/?token="), body.URL)

	// the emailed link carries a verifiable token with normalized claims
	parsed, err := url.Parse(body.URL)
	require.NoError(t, err)
	id, err := tokens.Verify(parsed.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "ada@example.com", id.Email)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ada@example.com", sender.sent[0].To)
	assert.Contains(t, sender.sent[0].HTML, body.URL)
}

func TestGenerateFormLinkDerivesHostFromRequest(t *testing.T) {
	h := NewFormLinkHandler(token.NewService("test-secret"), &fakeSender{}, "", testLog)

	rec, req := postJSON("/api/generate-form-link", `{"name":"Ada","email":"ada@example.com"}`)
	req.Host = "pulse.internal:8080"
	req.Header.Set("X-Forwarded-Proto", "https")
	h.GenerateFormLink(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, strings.HasPrefix(body.URL, "https://pulse.internal:8080/?token="), body.URL)
}

func TestGenerateFormLinkValidation(t *testing.T) {
	sender := &fakeSender{}
	h := NewFormLinkHandler(token.NewService("test-secret"), sender, "", testLog)

	rec, req := postJSON("/api/generate-form-link", `{"name":"A","email":"not-an-email"}`)
	h.GenerateFormLink(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, sender.sent)
}

func TestGenerateFormLinkDeliveryFailure(t *testing.T) {
	h := NewFormLinkHandler(token.NewService("test-secret"), &fakeSender{err: errors.New("resend down")}, "", testLog)

	rec, req := postJSON("/api/generate-form-link", `{"name":"Ada","email":"ada@example.com"}`)
	h.GenerateFormLink(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVerifyTokenEndpoint(t *testing.T) {
	tokens := token.NewService("test-secret")
	h := NewFormLinkHandler(tokens, &fakeSender{}, "", testLog)

	tok, err := tokens.Issue("Ada", "ada@example.com")
	require.NoError(t, err)

	rec, req := postJSON("/api/verify-token", `{"token":"`+tok+`"}`)
	h.VerifyToken(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Ada","email":"ada@example.com"}`, rec.Body.String())
}

func TestVerifyTokenMissing(t *testing.T) {
	h := NewFormLinkHandler(token.NewService("test-secret"), &fakeSender{}, "", testLog)

	rec, req := postJSON("/api/verify-token", `{}`)
	h.VerifyToken(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Token is required"}`, rec.Body.String())
}

func TestVerifyTokenInvalid(t *testing.T) {
	h := NewFormLinkHandler(token.NewService("test-secret"), &fakeSender{}, "", testLog)

	rec, req := postJSON("/api/verify-token", `{"token":"garbage"}`)
	h.VerifyToken(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
}
