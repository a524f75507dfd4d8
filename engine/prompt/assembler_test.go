package prompt

import (
	"strings"
	"testing"

	"github.com/msbuild-skills/msbuild-expert/engine/intent"
	"github.com/msbuild-skills/msbuild-expert/engine/knowledge/store"
	"github.com/stretchr/testify/assert"
)

func TestAssembler_Assemble(t *testing.T) {
	st := store.New(map[string]string{
		"build-errors": "## CS0029\n\nImplicit conversion.",
		"performance":  "perf notes",
	})
	a := NewAssembler(intent.NewMSBuild(), st)

	t.Run("Should append the mapped bundle under the reference heading", func(t *testing.T) {
		got := a.Assemble(intent.BuildError)
		assert.Equal(t, BaseInstructions+"\n\n## Reference Knowledge\n\n## CS0029\n\nImplicit conversion.", got)
	})

	t.Run("Should return the base instructions for the fallback intent", func(t *testing.T) {
		assert.Equal(t, BaseInstructions, a.Assemble(intent.General))
	})

	t.Run("Should fall back when the mapped bundle is not loaded", func(t *testing.T) {
		assert.Equal(t, BaseInstructions, a.Assemble(intent.StyleReview))
	})

	t.Run("Should fall back with an empty store", func(t *testing.T) {
		empty := NewAssembler(intent.NewMSBuild(), nil)
		assert.Equal(t, BaseInstructions, empty.Assemble(intent.Performance))
	})

	t.Run("Should fall back for an unknown label", func(t *testing.T) {
		assert.Equal(t, BaseInstructions, a.Assemble(intent.Label("UNKNOWN")))
	})
}

func TestAssembler_Options(t *testing.T) {
	t.Run("Should use overridden texts", func(t *testing.T) {
		a := NewAssembler(nil, nil, WithBase("base"), WithRedirect("elsewhere"))
		assert.Equal(t, "base", a.Assemble(intent.BuildError))
		assert.Equal(t, "elsewhere", a.Redirect())
	})

	t.Run("Should default to the MSBuild texts", func(t *testing.T) {
		a := NewAssembler(intent.NewMSBuild(), store.Empty())
		assert.True(t, strings.HasPrefix(a.Base(), "You are the MSBuild Expert"))
		assert.Contains(t, a.Redirect(), "@msbuild")
	})
}
