// Package llm defines the narrow boundary to the external generative
// model: prompt construction on the way in, defensive free-text parsing
// on the way out. Callers never see raw model output.
package llm

import (
	"context"

	"github.com/rewritely/rewritely-be/internal/models"
)

// RewriteResult holds the parsed output of a bullet rewrite: the
// improved bullet variants and, index-aligned, the list of key changes
// made to each variant.
type RewriteResult struct {
	Bullets    []string
	KeyChanges [][]string
}

// Provider is the interface to a text-generation backend.
type Provider interface {
	// RewriteBullet asks the model for improved versions of a resume
	// bullet targeted at the given job description.
	RewriteBullet(ctx context.Context, jobDescription, bullet string) (*RewriteResult, error)

	// GenerateStarStory turns a resume bullet into a four-part STAR
	// interview narrative.
	GenerateStarStory(ctx context.Context, bullet string) (*models.StarStory, error)

	// ExtractBullets pulls the key achievement bullets out of raw
	// resume text.
	ExtractBullets(ctx context.Context, resumeText string) ([]string, error)
}
