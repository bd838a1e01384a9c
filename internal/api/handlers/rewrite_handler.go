package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rewritely/rewritely-be/internal/apperr"
	"github.com/rewritely/rewritely-be/internal/auth"
	"github.com/rewritely/rewritely-be/internal/models"
	"github.com/rewritely/rewritely-be/internal/services"
)

// RewriteHandler handles HTTP requests for saved resume rewrites.
type RewriteHandler struct {
	service services.RewriteServiceProvider
}

// NewRewriteHandler creates a new RewriteHandler.
func NewRewriteHandler(service services.RewriteServiceProvider) *RewriteHandler {
	return &RewriteHandler{service: service}
}

// CreateRewritePayload defines the structure for save requests.
type CreateRewritePayload struct {
	Title          string            `json:"title"`
	Content        string            `json:"content" validate:"required"`
	JobDescription string            `json:"jobDescription" validate:"required"`
	Tags           []string          `json:"tags"`
	StarStory      *models.StarStory `json:"starStory"`
}

// Create handles the request to save a new rewrite.
func (h *RewriteHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	var payload CreateRewritePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperr.ErrValidation))
		return
	}
	if err := validatePayload(payload); err != nil {
		respondError(w, err)
		return
	}

	rewrite, err := h.service.CreateRewrite(userID, models.ResumeRewrite{
		Title:          payload.Title,
		Content:        payload.Content,
		JobDescription: payload.JobDescription,
		Tags:           payload.Tags,
		StarStory:      payload.StarStory,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "data": rewrite})
}

// GetAll handles the request to list the caller's rewrites, optionally
// filtered to favorites via ?favorite=true.
func (h *RewriteHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	favoriteOnly := r.URL.Query().Get("favorite") == "true"

	rewrites, err := h.service.GetRewrites(userID, favoriteOnly)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(rewrites),
		"data":    rewrites,
	})
}

// Get handles the request to fetch one rewrite by id.
func (h *RewriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	rewrite, err := h.service.GetRewriteByID(userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": rewrite})
}

// Update handles a partial update of one rewrite.
func (h *RewriteHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	var update services.RewriteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, fmt.Errorf("%w: invalid request body", apperr.ErrValidation))
		return
	}

	rewrite, err := h.service.UpdateRewrite(userID, chi.URLParam(r, "id"), update)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": rewrite})
}

// Delete handles the request to delete one rewrite.
func (h *RewriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	if err := h.service.DeleteRewrite(userID, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": map[string]interface{}{}})
}

// ToggleFavorite inverts the favorite flag of one rewrite.
func (h *RewriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		respondError(w, apperr.ErrUnauthorized)
		return
	}

	rewrite, err := h.service.ToggleFavorite(userID, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": rewrite})
}

// currentUserID pulls the authenticated user id out of the request
// context.
func currentUserID(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}
