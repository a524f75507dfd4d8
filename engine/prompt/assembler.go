// Package prompt builds the system prompt sent back to the chat platform.
package prompt

import (
	"strings"

	"github.com/msbuild-skills/msbuild-expert/engine/intent"
	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/store"
)

// KnowledgeHeading separates the base instructions from the appended bundle.
const KnowledgeHeading = "\n\n## Reference Knowledge\n\n"

// BundleResolver maps an intent label to a knowledge bundle name.
type BundleResolver interface {
	Bundle(label intent.Label) (string, bool)
}

// Assembler composes base instructions with an intent-selected bundle.
type Assembler struct {
	base     string
	redirect string
	bundles  BundleResolver
	store    *store.Store
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithBase overrides the base instructions.
func WithBase(base string) Option {
	return func(a *Assembler) { a.base = base }
}

// WithRedirect overrides the out-of-scope message.
func WithRedirect(text string) Option {
	return func(a *Assembler) { a.redirect = text }
}

// NewAssembler returns an assembler reading bundles from st. A nil store
// behaves as an empty one.
func NewAssembler(bundles BundleResolver, st *store.Store, opts ...Option) *Assembler {
	a := &Assembler{
		base:     BaseInstructions,
		redirect: RedirectInstructions,
		bundles:  bundles,
		store:    st,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble returns the base instructions, followed by the bundle mapped to
// label when that bundle is loaded.
func (a *Assembler) Assemble(label intent.Label) string {
	text, ok := a.Knowledge(label)
	if !ok {
		return a.base
	}
	var b strings.Builder
	b.Grow(len(a.base) + len(KnowledgeHeading) + len(text))
	b.WriteString(a.base)
	b.WriteString(KnowledgeHeading)
	b.WriteString(text)
	return b.String()
}

// Knowledge returns the bundle text that Assemble would append for label.
func (a *Assembler) Knowledge(label intent.Label) (string, bool) {
	if a.bundles == nil {
		return "", false
	}
	name, ok := a.bundles.Bundle(label)
	if !ok {
		return "", false
	}
	return a.store.Get(name)
}

// Redirect returns the out-of-scope system message.
func (a *Assembler) Redirect() string {
	return a.redirect
}

// Base returns the base instructions.
func (a *Assembler) Base() string {
	return a.base
}
