package intent

import (
	"testing"

	"github.com/msbuild-skills/msbuild-expert/engine/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewMSBuild()

	t.Run("Should route a diagnostic code to build errors", func(t *testing.T) {
		assert.Equal(t, BuildError, c.Classify("I get error CS0029 when building"))
	})

	t.Run("Should route performance vocabulary to performance", func(t *testing.T) {
		assert.Equal(t, Performance, c.Classify("My build is slow, how can I speed up incremental builds?"))
	})

	t.Run("Should route review requests to style review", func(t *testing.T) {
		assert.Equal(t, StyleReview, c.Classify("Please review my csproj"))
	})

	t.Run("Should route migration questions to modernization", func(t *testing.T) {
		assert.Equal(t, Modernization, c.Classify("migrate packages.config to PackageReference"))
	})

	t.Run("Should break ties in declared order", func(t *testing.T) {
		assert.Equal(t, BuildError, c.Classify("error slow"))
		assert.Equal(t, Performance, c.Classify("slow review"))
	})

	t.Run("Should fall back to general when nothing matches", func(t *testing.T) {
		assert.Equal(t, General, c.Classify("How do I set a property?"))
		assert.Equal(t, General, c.Classify(""))
	})
}

func TestClassifier_Scores(t *testing.T) {
	t.Run("Should report every category in declared order", func(t *testing.T) {
		scores := NewMSBuild().Scores("error slow")
		assert.Equal(t, []Score{
			{Label: BuildError, Score: 1},
			{Label: Performance, Score: 1},
			{Label: StyleReview, Score: 0},
			{Label: Modernization, Score: 0},
		}, scores)
	})
}

func TestClassifier_Bundle(t *testing.T) {
	c := NewMSBuild()

	t.Run("Should map each category to its bundle", func(t *testing.T) {
		cases := map[Label]string{
			BuildError:    "build-errors",
			Performance:   "performance",
			StyleReview:   "style-guide",
			Modernization: "modernization",
		}
		for label, want := range cases {
			got, ok := c.Bundle(label)
			require.True(t, ok, label)
			assert.Equal(t, want, got)
		}
	})

	t.Run("Should have no bundle for the fallback", func(t *testing.T) {
		_, ok := c.Bundle(General)
		assert.False(t, ok)
	})

	t.Run("Should not know an undeclared label", func(t *testing.T) {
		_, ok := c.Category(Label("OTHER"))
		assert.False(t, ok)
	})

	t.Run("Should list labels with the fallback last", func(t *testing.T) {
		assert.Equal(t, []Label{BuildError, Performance, StyleReview, Modernization, General}, c.Labels())
	})
}

func TestClassifier_Generic(t *testing.T) {
	t.Run("Should work with arbitrary categories", func(t *testing.T) {
		c := NewClassifier(
			Category{Label: "NONE"},
			Category{Label: "A", Bundle: "a", Rules: pattern.Compile("A", `alpha`)},
			Category{Label: "B", Bundle: "b", Rules: pattern.Compile("B", `beta`, `gamma`)},
		)
		assert.Equal(t, Label("B"), c.Classify("alpha beta gamma"))
		assert.Equal(t, Label("A"), c.Classify("alpha beta"))
		assert.Equal(t, Label("NONE"), c.Classify("delta"))
	})
}
