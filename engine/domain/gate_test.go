package domain

import (
	"testing"

	"github.com/msbuild-skills/msbuild-expert/engine/pattern"
	"github.com/stretchr/testify/assert"
)

func TestGate_Classify(t *testing.T) {
	gate := NewMSBuild()

	t.Run("Should accept a message with a diagnostic code", func(t *testing.T) {
		assert.True(t, gate.Classify("dotnet build fails with CS0029"))
	})

	t.Run("Should let a high-confidence signal override negative signals", func(t *testing.T) {
		assert.True(t, gate.Classify("npm install runs before my MyApp.csproj builds and package.json is involved"))
	})

	t.Run("Should reject a message with only a negative signal", func(t *testing.T) {
		assert.False(t, gate.Classify("npm install is slow"))
	})

	t.Run("Should accept two distinct medium-confidence terms", func(t *testing.T) {
		assert.True(t, gate.Classify("How do I add a NuGet package in Visual Studio?"))
	})

	t.Run("Should reject a single medium-confidence term", func(t *testing.T) {
		assert.False(t, gate.Classify("Which Visual Studio theme do you like?"))
	})

	t.Run("Should count a repeated medium term once", func(t *testing.T) {
		assert.False(t, gate.Classify("NuGet NuGet NuGet"))
	})

	t.Run("Should reject medium terms when a negative signal is present", func(t *testing.T) {
		assert.False(t, gate.Classify("my .NET solution also has a webpack config"))
	})

	t.Run("Should match .NET and C# in prose", func(t *testing.T) {
		assert.True(t, gate.Classify("I use C# on .NET 8"))
		assert.True(t, gate.Classify("ASP.NET app in C#"))
	})

	t.Run("Should reject empty input", func(t *testing.T) {
		assert.False(t, gate.Classify(""))
	})

	t.Run("Should reject unrelated text", func(t *testing.T) {
		assert.False(t, gate.Classify("what is the capital of France?"))
	})
}

func TestGate_GenericTiers(t *testing.T) {
	gate := New(Tiers{
		High:     pattern.Compile(TierHigh, `\bHIGH\b`),
		Negative: pattern.Compile(TierNegative, `\bNEG\b`),
		Medium:   pattern.Compile(TierMedium, `\bm1\b`, `\bm2\b`, `\bm3\b`),
	}, WithMinMedium(3))

	t.Run("Should apply the configured medium threshold", func(t *testing.T) {
		assert.False(t, gate.Classify("m1 m2"))
		assert.True(t, gate.Classify("m1 m2 m3"))
	})

	t.Run("Should evaluate tiers in override order", func(t *testing.T) {
		assert.True(t, gate.Classify("HIGH NEG"))
		assert.False(t, gate.Classify("NEG m1 m2 m3"))
	})
}

func TestGate_Explain(t *testing.T) {
	t.Run("Should list matches for every tier", func(t *testing.T) {
		exp := NewMSBuild().Explain("restore of App.csproj fails, also ran npm install")

		assert.True(t, exp.InScope)
		assert.Contains(t, exp.High, `(?i)\.csproj\b`)
		assert.Contains(t, exp.Negative, `(?i)\bnpm\s+(install|run|test)\b`)
		assert.Equal(t, []string{`(?i)\bcsproj\b`}, exp.Medium)
	})
}
