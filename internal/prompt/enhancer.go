// Package prompt turns sparse campaign details into a poster brief the image
// model responds well to. Enhancement is local and deterministic; the model
// call itself happens in the genai package.
package prompt

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ngonexus/internal/domain"
)

// EnhanceRequest carries the campaign facts available for the brief.
type EnhanceRequest struct {
	Title    string          `json:"title"`
	Category domain.Category `json:"category"`
	City     string          `json:"city"`
	Theme    string          `json:"theme"`
}

// Enhancer produces a poster brief from campaign facts.
type Enhancer interface {
	Enhance(req EnhanceRequest) string
}

// StaticEnhancer is the default enhancer: a fixed template with title-cased
// inputs and a category-specific art direction line.
type StaticEnhancer struct{}

func NewStaticEnhancer() *StaticEnhancer {
	return &StaticEnhancer{}
}

// Enhance builds the brief. Missing fields degrade to a generic direction
// rather than producing empty clauses.
func (s *StaticEnhancer) Enhance(req EnhanceRequest) string {
	titler := cases.Title(language.Und)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "Community Impact"
	}
	title = titler.String(title)

	var b strings.Builder
	b.WriteString(title)
	if direction := categoryDirection(req.Category); direction != "" {
		b.WriteString(". ")
		b.WriteString(direction)
	}
	if city := strings.TrimSpace(req.City); city != "" {
		b.WriteString(" Set in ")
		b.WriteString(titler.String(city))
		b.WriteString(".")
	}
	if theme := strings.TrimSpace(req.Theme); theme != "" {
		b.WriteString(" Visual theme: ")
		b.WriteString(theme)
		b.WriteString(".")
	}
	b.WriteString(" Bold headline typography, space reserved for a donation call to action.")
	return b.String()
}

func categoryDirection(category domain.Category) string {
	switch category {
	case domain.CategoryEducation:
		return "Warm classroom scene, children with books and tablets, hopeful morning light."
	case domain.CategoryEnvironment:
		return "Lush reforested landscape, volunteers planting saplings, vivid greens."
	case domain.CategoryHealthcare:
		return "Clean water and care imagery, community health workers, calm blues."
	case domain.CategoryDisasterRelief:
		return "Relief supplies and rebuilding effort, resilient community, dawn palette."
	default:
		return "Documentary photography style, real people, dignified and hopeful."
	}
}

var _ Enhancer = (*StaticEnhancer)(nil)
