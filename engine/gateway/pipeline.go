package gateway

import (
	"github.com/msbuild-skills/msbuild-expert/engine/domain"
	"github.com/msbuild-skills/msbuild-expert/engine/intent"
	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/store"
	"github.com/msbuild-skills/msbuild-expert/engine/prompt"
)

// Gate decides whether a message is in scope.
type Gate interface {
	Classify(message string) bool
}

// Classifier routes an in-scope message to an intent.
type Classifier interface {
	Classify(message string) intent.Label
}

// Assembler builds the system prompt for an intent.
type Assembler interface {
	Assemble(label intent.Label) string
	Redirect() string
}

// Decision is the outcome of running one message through the pipeline.
type Decision struct {
	InScope bool         `json:"in_scope"`
	Intent  intent.Label `json:"intent,omitempty"`
	Prompt  string       `json:"prompt"`
}

// Pipeline chains the gate, the classifier and the assembler.
type Pipeline struct {
	gate       Gate
	classifier Classifier
	assembler  Assembler
}

// NewPipeline returns a pipeline over the given stages.
func NewPipeline(gate Gate, classifier Classifier, assembler Assembler) *Pipeline {
	return &Pipeline{gate: gate, classifier: classifier, assembler: assembler}
}

// NewMSBuildPipeline wires the MSBuild tables and prompts over st.
func NewMSBuildPipeline(st *store.Store) *Pipeline {
	classifier := intent.NewMSBuild()
	return NewPipeline(domain.NewMSBuild(), classifier, prompt.NewAssembler(classifier, st))
}

// Decide gates content and, when in scope, classifies it and assembles the
// prompt. Out-of-scope content yields the redirect text.
func (p *Pipeline) Decide(content string) Decision {
	if !p.gate.Classify(content) {
		return Decision{InScope: false, Prompt: p.assembler.Redirect()}
	}
	label := p.classifier.Classify(content)
	return Decision{InScope: true, Intent: label, Prompt: p.assembler.Assemble(label)}
}
