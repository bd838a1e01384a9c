package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rewritely/rewritely-be/internal/apperr"
	"github.com/rewritely/rewritely-be/internal/models"
)

// RewriteUpdate carries the fields of a partial rewrite update. Nil
// pointers (and a nil Tags slice) leave the stored value untouched.
type RewriteUpdate struct {
	Title          *string           `json:"title"`
	Content        *string           `json:"content"`
	JobDescription *string           `json:"jobDescription"`
	IsFavorite     *bool             `json:"isFavorite"`
	Tags           []string          `json:"tags"`
	StarStory      *models.StarStory `json:"starStory"`
}

// RewriteServiceProvider defines the interface for rewrite services.
// Every operation is scoped to the owning user; a record belonging to
// someone else is indistinguishable from one that does not exist.
type RewriteServiceProvider interface {
	CreateRewrite(userID string, rewrite models.ResumeRewrite) (models.ResumeRewrite, error)
	GetRewrites(userID string, favoriteOnly bool) ([]models.ResumeRewrite, error)
	GetRewriteByID(userID, id string) (models.ResumeRewrite, error)
	UpdateRewrite(userID, id string, update RewriteUpdate) (models.ResumeRewrite, error)
	DeleteRewrite(userID, id string) error
	ToggleFavorite(userID, id string) (models.ResumeRewrite, error)
}

// RewriteService provides business logic for resume rewrite records.
type RewriteService struct {
	db *sql.DB
}

// NewRewriteService creates a new RewriteService.
func NewRewriteService(db *sql.DB) *RewriteService {
	return &RewriteService{db: db}
}

const rewriteColumns = "id, user_id, title, content, job_description, is_favorite, tags_json, star_story_json, created_at, updated_at"

// scanRewrite is a helper to scan a rewrite from a row or rows object.
func scanRewrite(scanner interface{ Scan(...interface{}) error }) (models.ResumeRewrite, error) {
	var rw models.ResumeRewrite
	var tags, star sql.NullString

	err := scanner.Scan(
		&rw.ID, &rw.UserID, &rw.Title, &rw.Content, &rw.JobDescription,
		&rw.IsFavorite, &tags, &star, &rw.CreatedAt, &rw.UpdatedAt,
	)
	if err != nil {
		return rw, err
	}

	rw.TagsJSON = tags.String
	rw.StarStoryJSON = star.String
	rw.PrepareForAPI()
	return rw, nil
}

// CreateRewrite stores a new rewrite record for the given user.
func (s *RewriteService) CreateRewrite(userID string, rewrite models.ResumeRewrite) (models.ResumeRewrite, error) {
	now := time.Now().UTC()
	rewrite.ID = uuid.New().String()
	rewrite.UserID = userID
	rewrite.CreatedAt = now
	rewrite.UpdatedAt = now
	if rewrite.Title == "" {
		rewrite.Title = models.DefaultRewriteTitle
	}
	rewrite.PrepareForSave()

	const query = `
		INSERT INTO resume_rewrites(id, user_id, title, content, job_description, is_favorite, tags_json, star_story_json, created_at, updated_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := s.db.Prepare(query)
	if err != nil {
		return models.ResumeRewrite{}, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(
		rewrite.ID, rewrite.UserID, rewrite.Title, rewrite.Content, rewrite.JobDescription,
		rewrite.IsFavorite, rewrite.TagsJSON, rewrite.StarStoryJSON, rewrite.CreatedAt, rewrite.UpdatedAt,
	)
	if err != nil {
		return models.ResumeRewrite{}, fmt.Errorf("failed to execute statement: %w", err)
	}

	rewrite.PrepareForAPI()
	return rewrite, nil
}

// GetRewrites retrieves the user's rewrites, favorites first, most
// recently updated first within each group.
func (s *RewriteService) GetRewrites(userID string, favoriteOnly bool) ([]models.ResumeRewrite, error) {
	query := "SELECT " + rewriteColumns + " FROM resume_rewrites WHERE user_id = ?"
	if favoriteOnly {
		query += " AND is_favorite = 1"
	}
	query += " ORDER BY is_favorite DESC, updated_at DESC"

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rewrites := []models.ResumeRewrite{}
	for rows.Next() {
		rw, err := scanRewrite(rows)
		if err != nil {
			return nil, err
		}
		rewrites = append(rewrites, rw)
	}
	return rewrites, rows.Err()
}

// GetRewriteByID retrieves a single rewrite owned by the user.
func (s *RewriteService) GetRewriteByID(userID, id string) (models.ResumeRewrite, error) {
	row := s.db.QueryRow("SELECT "+rewriteColumns+" FROM resume_rewrites WHERE id = ? AND user_id = ?", id, userID)

	rw, err := scanRewrite(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ResumeRewrite{}, fmt.Errorf("%w: rewrite %s", apperr.ErrNotFound, id)
		}
		return models.ResumeRewrite{}, err
	}
	return rw, nil
}

// UpdateRewrite applies a partial update to a rewrite owned by the
// user. Concurrent updates follow last-write-wins.
func (s *RewriteService) UpdateRewrite(userID, id string, update RewriteUpdate) (models.ResumeRewrite, error) {
	rw, err := s.GetRewriteByID(userID, id)
	if err != nil {
		return models.ResumeRewrite{}, err
	}

	if update.Title != nil && *update.Title != "" {
		rw.Title = *update.Title
	}
	if update.Content != nil {
		rw.Content = *update.Content
	}
	if update.JobDescription != nil {
		rw.JobDescription = *update.JobDescription
	}
	if update.IsFavorite != nil {
		rw.IsFavorite = *update.IsFavorite
	}
	if update.Tags != nil {
		rw.Tags = update.Tags
	}
	if update.StarStory != nil {
		rw.StarStory = update.StarStory
	}

	return s.saveRewrite(rw)
}

// DeleteRewrite removes a rewrite owned by the user.
func (s *RewriteService) DeleteRewrite(userID, id string) error {
	res, err := s.db.Exec("DELETE FROM resume_rewrites WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: rewrite %s", apperr.ErrNotFound, id)
	}
	return nil
}

// ToggleFavorite inverts the favorite flag of a rewrite owned by the
// user and returns the updated record.
func (s *RewriteService) ToggleFavorite(userID, id string) (models.ResumeRewrite, error) {
	rw, err := s.GetRewriteByID(userID, id)
	if err != nil {
		return models.ResumeRewrite{}, err
	}

	rw.IsFavorite = !rw.IsFavorite
	return s.saveRewrite(rw)
}

// saveRewrite writes the full record back, refreshing updated_at.
func (s *RewriteService) saveRewrite(rw models.ResumeRewrite) (models.ResumeRewrite, error) {
	rw.UpdatedAt = time.Now().UTC()
	rw.PrepareForSave()

	const query = `
		UPDATE resume_rewrites
		SET title = ?, content = ?, job_description = ?, is_favorite = ?, tags_json = ?, star_story_json = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	_, err := s.db.Exec(query,
		rw.Title, rw.Content, rw.JobDescription, rw.IsFavorite,
		rw.TagsJSON, rw.StarStoryJSON, rw.UpdatedAt,
		rw.ID, rw.UserID,
	)
	if err != nil {
		return models.ResumeRewrite{}, err
	}

	rw.PrepareForAPI()
	return rw, nil
}
