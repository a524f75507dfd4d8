// Package domain decides whether a chat message belongs to the MSBuild/.NET
// build domain, using three ordered tiers of patterns.
package domain

import "github.com/msbuild-skills/msbuild-expert/engine/pattern"

const (
	TierHigh     = "high"
	TierNegative = "negative"
	TierMedium   = "medium"
)

// DefaultMinMedium is the number of distinct medium-confidence matches needed
// to accept a message that carries no high-confidence signal.
const DefaultMinMedium = 2

// Tiers groups the pattern tables of a gate.
type Tiers struct {
	High     []pattern.Rule
	Negative []pattern.Rule
	Medium   []pattern.Rule
}

// Gate is a stateless, read-only classifier; safe for concurrent use.
type Gate struct {
	tiers     Tiers
	minMedium int
}

// Option configures a Gate.
type Option func(*Gate)

// WithMinMedium overrides the medium-confidence threshold.
func WithMinMedium(n int) Option {
	return func(g *Gate) {
		if n > 0 {
			g.minMedium = n
		}
	}
}

// New builds a gate over the given tiers.
func New(tiers Tiers, opts ...Option) *Gate {
	g := &Gate{tiers: tiers, minMedium: DefaultMinMedium}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewMSBuild returns the gate for MSBuild/.NET build questions.
func NewMSBuild() *Gate {
	return New(MSBuildTiers())
}

// Classify reports whether message is in scope. A single high-confidence
// signal wins over any number of negative signals; otherwise any negative
// signal rejects, and medium terms need to reach the threshold.
func (g *Gate) Classify(message string) bool {
	if message == "" {
		return false
	}
	negatives := pattern.Count(g.tiers.Negative, message)
	if pattern.Any(g.tiers.High, message) {
		return true
	}
	if negatives > 0 {
		return false
	}
	return pattern.Count(g.tiers.Medium, message) >= g.minMedium
}

// Explanation lists the expressions that matched in each tier.
type Explanation struct {
	InScope  bool     `json:"in_scope"`
	High     []string `json:"high,omitempty"`
	Negative []string `json:"negative,omitempty"`
	Medium   []string `json:"medium,omitempty"`
}

// Explain classifies message and reports every match, without short-circuiting.
func (g *Gate) Explain(message string) Explanation {
	return Explanation{
		InScope:  g.Classify(message),
		High:     pattern.Matches(g.tiers.High, message),
		Negative: pattern.Matches(g.tiers.Negative, message),
		Medium:   pattern.Matches(g.tiers.Medium, message),
	}
}
