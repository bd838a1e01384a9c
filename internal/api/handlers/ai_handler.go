package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/rewritely/rewritely-be/internal/apperr"
	"github.com/rewritely/rewritely-be/internal/extract"
	"github.com/rewritely/rewritely-be/internal/keywords"
	"github.com/rewritely/rewritely-be/internal/llm"
)

// maxUploadBytes caps uploaded resume files at 10 MiB.
const maxUploadBytes = 10 << 20

// AIHandler handles the endpoints that delegate to the external
// generative model.
type AIHandler struct {
	provider llm.Provider
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(provider llm.Provider) *AIHandler {
	return &AIHandler{provider: provider}
}

// RewritePayload defines the structure for bullet rewrite requests.
type RewritePayload struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	ResumeBullet   string `json:"resumeBullet" validate:"required"`
}

// StarPayload defines the structure for STAR generation requests.
type StarPayload struct {
	Bullet string `json:"bullet" validate:"required"`
}

// RewriteResume asks the model for improved bullet variants and scores
// each against the job description's keywords.
func (h *AIHandler) RewriteResume(w http.ResponseWriter, r *http.Request) {
	var payload RewritePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperr.ErrValidation))
		return
	}
	if err := validatePayload(payload); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.provider.RewriteBullet(r.Context(), payload.JobDescription, payload.ResumeBullet)
	if err != nil {
		respondError(w, err)
		return
	}

	// Keyword analysis: missing keywords are measured against the
	// original bullet, match counts against each suggestion.
	missing := keywords.Compute(payload.JobDescription, payload.ResumeBullet).Missing
	matches := make([]int, len(result.Bullets))
	for i, b := range result.Bullets {
		matches[i] = len(keywords.Compute(payload.JobDescription, b).Present)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rewritten":       strings.Join(result.Bullets, "\n\n"),
		"keyChanges":      result.KeyChanges,
		"missingKeywords": missing,
		"keywordMatches":  matches,
	})
}

// GenerateStar turns a resume bullet into a STAR interview story.
func (h *AIHandler) GenerateStar(w http.ResponseWriter, r *http.Request) {
	var payload StarPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperr.ErrValidation))
		return
	}
	if err := validatePayload(payload); err != nil {
		respondError(w, err)
		return
	}

	star, err := h.provider.GenerateStarStory(r.Context(), payload.Bullet)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"star": star})
}

// UploadResume accepts a multipart resume file, extracts its text and
// asks the model for the key bullet points.
func (h *AIHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("resume")
	if err != nil {
		respondError(w, fmt.Errorf("%w: no file uploaded", apperr.ErrValidation))
		return
	}
	defer file.Close()

	data, err := extract.ReadAll(file)
	if err != nil {
		respondError(w, err)
		return
	}

	text, err := extract.ResumeText(header.Header.Get("Content-Type"), data)
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperr.ErrValidation, err))
		return
	}

	bullets, err := h.provider.ExtractBullets(r.Context(), text)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("Resume bullet extraction failed")
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"bullets": bullets})
}
