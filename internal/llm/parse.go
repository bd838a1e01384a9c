package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rewritely/rewritely-be/internal/apperr"
	"github.com/rewritely/rewritely-be/internal/models"
)

// Section markers the rewrite prompt instructs the model to emit.
const (
	bulletsMarker = "---IMPROVED BULLETS---"
	changesMarker = "---KEY CHANGES---"
)

var (
	numPrefixRe   = regexp.MustCompile(`^\d+\.\s*`)
	changeSplitRe = regexp.MustCompile(`\]\s*\[`)
)

// ParseRewrite extracts the improved bullets and their key-change
// groups from the model's free-text rewrite response. The model is not
// guaranteed to be syntactically perfect, so the parser degrades by
// truncating to the aligned prefix rather than failing outright; it
// only errors when a section marker is missing (ErrMalformedResponse)
// or nothing usable remains (ErrEmptyResult).
func ParseRewrite(raw string) (*RewriteResult, error) {
	bulletsStart := strings.Index(raw, bulletsMarker)
	changesStart := strings.Index(raw, changesMarker)
	if bulletsStart == -1 {
		return nil, fmt.Errorf("%w: missing %q section", apperr.ErrMalformedResponse, bulletsMarker)
	}
	if changesStart == -1 || changesStart < bulletsStart {
		return nil, fmt.Errorf("%w: missing %q section", apperr.ErrMalformedResponse, changesMarker)
	}

	bulletsText := raw[bulletsStart+len(bulletsMarker) : changesStart]
	changesText := raw[changesStart+len(changesMarker):]

	var bullets []string
	for _, line := range strings.Split(bulletsText, "\n") {
		line = strings.TrimSpace(numPrefixRe.ReplaceAllString(strings.TrimSpace(line), ""))
		line = strings.TrimPrefix(line, "[")
		line = strings.TrimSuffix(line, "]")
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}

	var changes [][]string
	for _, line := range strings.Split(changesText, "\n") {
		line = numPrefixRe.ReplaceAllString(strings.TrimSpace(line), "")
		var group []string
		for _, item := range changeSplitRe.Split(line, -1) {
			item = strings.TrimSpace(item)
			item = strings.TrimPrefix(item, "[")
			item = strings.TrimSuffix(item, "]")
			item = strings.TrimSpace(item)
			if item != "" {
				group = append(group, item)
			}
		}
		if len(group) > 0 {
			changes = append(changes, group)
		}
	}

	// The two lists must stay index-aligned; keep the shared prefix.
	n := len(bullets)
	if len(changes) < n {
		n = len(changes)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: no aligned bullet/change pairs", apperr.ErrEmptyResult)
	}

	return &RewriteResult{Bullets: bullets[:n], KeyChanges: changes[:n]}, nil
}

// ParseStarStory extracts the STAR JSON object from the model's
// response, tolerating surrounding prose and markdown code fences.
func ParseStarStory(raw string) (*models.StarStory, error) {
	clean := stripCodeFence(raw)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object in STAR response", apperr.ErrMalformedResponse)
	}

	var star models.StarStory
	if err := json.Unmarshal([]byte(clean[start:end+1]), &star); err != nil {
		return nil, fmt.Errorf("%w: invalid STAR JSON: %v", apperr.ErrMalformedResponse, err)
	}
	return &star, nil
}

// ParseBulletLines splits a plain one-bullet-per-line response into
// trimmed, non-empty bullet strings.
func ParseBulletLines(raw string) []string {
	var bullets []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// stripCodeFence removes a wrapping ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	clean := strings.TrimSpace(s)
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
