package gateway

import (
	"testing"

	"github.com/msbuild-skills/msbuild-expert/engine/intent"
	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/store"
	"github.com/msbuild-skills/msbuild-expert/engine/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockGate struct{ mock.Mock }

func (m *mockGate) Classify(message string) bool {
	return m.Called(message).Bool(0)
}

type mockClassifier struct{ mock.Mock }

func (m *mockClassifier) Classify(message string) intent.Label {
	return m.Called(message).Get(0).(intent.Label)
}

type mockAssembler struct{ mock.Mock }

func (m *mockAssembler) Assemble(label intent.Label) string {
	return m.Called(label).String(0)
}

func (m *mockAssembler) Redirect() string {
	return m.Called().String(0)
}

func TestPipeline_Decide(t *testing.T) {
	p := NewMSBuildPipeline(store.New(map[string]string{"performance": "perf"}))

	t.Run("Should redirect out-of-scope content", func(t *testing.T) {
		d := p.Decide("npm install is slow")
		assert.False(t, d.InScope)
		assert.Empty(t, d.Intent)
		assert.Equal(t, prompt.RedirectInstructions, d.Prompt)
	})

	t.Run("Should classify and assemble in-scope content", func(t *testing.T) {
		d := p.Decide("Why is my build so slow? MyApp.csproj takes minutes")
		assert.True(t, d.InScope)
		assert.Equal(t, intent.Performance, d.Intent)
		assert.Equal(t, prompt.BaseInstructions+prompt.KnowledgeHeading+"perf", d.Prompt)
	})

	t.Run("Should fall back to the base prompt for general questions", func(t *testing.T) {
		d := p.Decide("What does msbuild do?")
		assert.True(t, d.InScope)
		assert.Equal(t, intent.General, d.Intent)
		assert.Equal(t, prompt.BaseInstructions, d.Prompt)
	})
}

func TestPipeline_Stages(t *testing.T) {
	t.Run("Should not classify content the gate rejects", func(t *testing.T) {
		gate, classifier, assembler := &mockGate{}, &mockClassifier{}, &mockAssembler{}
		gate.On("Classify", "hello").Return(false)
		assembler.On("Redirect").Return("go away")
		d := NewPipeline(gate, classifier, assembler).Decide("hello")
		assert.Equal(t, Decision{InScope: false, Prompt: "go away"}, d)
		classifier.AssertNotCalled(t, "Classify", mock.Anything)
		assembler.AssertNotCalled(t, "Assemble", mock.Anything)
		gate.AssertExpectations(t)
	})

	t.Run("Should pass the classified label to the assembler", func(t *testing.T) {
		gate, classifier, assembler := &mockGate{}, &mockClassifier{}, &mockAssembler{}
		gate.On("Classify", "msbuild").Return(true)
		classifier.On("Classify", "msbuild").Return(intent.Modernization)
		assembler.On("Assemble", intent.Modernization).Return("modern")
		d := NewPipeline(gate, classifier, assembler).Decide("msbuild")
		assert.Equal(t, Decision{InScope: true, Intent: intent.Modernization, Prompt: "modern"}, d)
		gate.AssertExpectations(t)
		classifier.AssertExpectations(t)
		assembler.AssertExpectations(t)
	})
}
