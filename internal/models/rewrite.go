package models

import (
	"encoding/json"
	"time"
)

// DefaultRewriteTitle is used when a rewrite is saved without a title.
const DefaultRewriteTitle = "Untitled Resume Rewrite"

// StarStory is a four-part behavioral interview narrative.
type StarStory struct {
	Situation string `json:"situation"`
	Task      string `json:"task"`
	Action    string `json:"action"`
	Result    string `json:"result"`
}

// ResumeRewrite represents one saved resume-bullet rewrite. A rewrite
// always belongs to exactly one user and every store operation is
// scoped by that owner.
type ResumeRewrite struct {
	ID             string `json:"id"`
	UserID         string `json:"userId"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	JobDescription string `json:"jobDescription"`
	IsFavorite     bool   `json:"isFavorite"`

	// JSON string fields for DB storage
	TagsJSON      string `json:"-"`
	StarStoryJSON string `json:"-"`

	// Slice/struct fields for API interaction
	Tags      []string   `json:"tags"`
	StarStory *StarStory `json:"starStory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PrepareForSave marshals the structured fields into their respective
// JSON strings for DB storage.
func (r *ResumeRewrite) PrepareForSave() {
	if r.Tags == nil {
		r.Tags = []string{}
	}
	tagsBytes, _ := json.Marshal(r.Tags)
	r.TagsJSON = string(tagsBytes)

	if r.StarStory != nil {
		starBytes, _ := json.Marshal(r.StarStory)
		r.StarStoryJSON = string(starBytes)
	} else {
		r.StarStoryJSON = ""
	}
}

// PrepareForAPI unmarshals the JSON string fields into their structured
// counterparts for API responses.
func (r *ResumeRewrite) PrepareForAPI() {
	r.Tags = []string{}
	if r.TagsJSON != "" {
		json.Unmarshal([]byte(r.TagsJSON), &r.Tags)
	}
	if r.StarStoryJSON != "" {
		var star StarStory
		if err := json.Unmarshal([]byte(r.StarStoryJSON), &star); err == nil {
			r.StarStory = &star
		}
	}
}
