// Package intent routes an in-scope message to one knowledge area by
// counting pattern matches per category.
package intent

import "github.com/msbuild-skills/msbuild-expert/engine/pattern"

// Label identifies an intent category.
type Label string

const (
	BuildError    Label = "BUILD_ERROR"
	Performance   Label = "PERFORMANCE"
	StyleReview   Label = "STYLE_REVIEW"
	Modernization Label = "MODERNIZATION"
	General       Label = "GENERAL"
)

func (l Label) String() string {
	return string(l)
}

// Category ties a label to its patterns and to the knowledge bundle that
// augments it. An empty Bundle means no augmentation.
type Category struct {
	Label       Label
	Bundle      string
	Description string
	Rules       []pattern.Rule
}

// Score is one category's match count.
type Score struct {
	Label Label `json:"label"`
	Score int   `json:"score"`
}

// Classifier selects the best-scoring category. Categories keep their
// declared order, which is also the tie-break order.
type Classifier struct {
	categories []Category
	fallback   Category
}

// NewClassifier builds a classifier over categories in declared order.
// fallback is returned when nothing matches.
func NewClassifier(fallback Category, categories ...Category) *Classifier {
	cats := make([]Category, len(categories))
	copy(cats, categories)
	return &Classifier{categories: cats, fallback: fallback}
}

// Scores returns each category's score in declared order.
func (c *Classifier) Scores(message string) []Score {
	scores := make([]Score, 0, len(c.categories))
	for i := range c.categories {
		scores = append(scores, Score{
			Label: c.categories[i].Label,
			Score: pattern.Count(c.categories[i].Rules, message),
		})
	}
	return scores
}

// Classify returns the label with the strictly highest score. Ties go to the
// category declared first; a zero maximum yields the fallback label.
func (c *Classifier) Classify(message string) Label {
	if message == "" {
		return c.fallback.Label
	}
	best := c.fallback.Label
	bestScore := 0
	for _, s := range c.Scores(message) {
		if s.Score > bestScore {
			best = s.Label
			bestScore = s.Score
		}
	}
	return best
}

// Category returns the category for label, including the fallback.
func (c *Classifier) Category(label Label) (Category, bool) {
	if label == c.fallback.Label {
		return c.fallback, true
	}
	for i := range c.categories {
		if c.categories[i].Label == label {
			return c.categories[i], true
		}
	}
	return Category{}, false
}

// Bundle returns the knowledge bundle associated with label, if any.
func (c *Classifier) Bundle(label Label) (string, bool) {
	cat, ok := c.Category(label)
	if !ok || cat.Bundle == "" {
		return "", false
	}
	return cat.Bundle, true
}

// Labels lists every category label in declared order followed by the fallback.
func (c *Classifier) Labels() []Label {
	labels := make([]Label, 0, len(c.categories)+1)
	for i := range c.categories {
		labels = append(labels, c.categories[i].Label)
	}
	return append(labels, c.fallback.Label)
}
