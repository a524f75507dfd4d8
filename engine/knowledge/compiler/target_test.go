package compiler

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargets_Validate(t *testing.T) {
	t.Run("Should accept the built-in targets", func(t *testing.T) {
		assert.NoError(t, BuiltinTargets().Validate())
	})

	t.Run("Should reject a bundle name that is not a slug", func(t *testing.T) {
		ts := singleTarget(1000, "doc-a")
		ts[0].Bundles[0].Name = "Build Errors"
		assert.ErrorIs(t, ts.Validate(), ErrInvalidTarget)
	})

	t.Run("Should reject duplicate bundle names", func(t *testing.T) {
		ts := singleTarget(1000, "doc-a")
		ts[0].Bundles = append(ts[0].Bundles, Bundle{Name: "bundle", Documents: []string{"doc-b"}})
		err := ts.Validate()
		require.ErrorIs(t, err, ErrInvalidTarget)
		assert.Contains(t, err.Error(), "duplicate bundle")
	})

	t.Run("Should reject targets sharing an output directory", func(t *testing.T) {
		ts := append(singleTarget(1000, "doc-a"), Target{
			Name: "other", OutputDir: "./out", Budget: 10,
			Bundles: []Bundle{{Name: "b", Documents: []string{"doc-a"}}},
		})
		assert.ErrorIs(t, ts.Validate(), ErrInvalidTarget)
	})

	t.Run("Should reject a bundle without documents", func(t *testing.T) {
		ts := singleTarget(1000)
		assert.ErrorIs(t, ts.Validate(), ErrInvalidTarget)
	})

	t.Run("Should reject an empty target list", func(t *testing.T) {
		assert.ErrorIs(t, Targets{}.Validate(), ErrInvalidTarget)
	})
}

func TestTargets_Select(t *testing.T) {
	t.Run("Should return every target for an empty name", func(t *testing.T) {
		got, err := BuiltinTargets().Select("")
		require.NoError(t, err)
		assert.Equal(t, []string{"copilot-extension", "agentic-workflows"}, got.Names())
	})

	t.Run("Should return the named target", func(t *testing.T) {
		got, err := BuiltinTargets().Select("agentic-workflows")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 40000, got[0].Budget)
	})
}

func TestLoadTargets(t *testing.T) {
	t.Run("Should load targets in file order", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		content := `targets:
  - name: zeta
    output_dir: out/zeta
    budget: 1200
    bundles:
      - name: second
        documents: [doc-b, doc-a]
      - name: first
        documents: [doc-a]
  - name: alpha
    output_dir: out/alpha
    budget: 900
    bundles:
      - name: only
        documents: [doc-a]
`
		require.NoError(t, afero.WriteFile(fs, "targets.yaml", []byte(content), 0o644))
		ts, err := LoadTargets(fs, "targets.yaml")
		require.NoError(t, err)
		assert.Equal(t, []string{"zeta", "alpha"}, ts.Names())
		assert.Equal(t, "second", ts[0].Bundles[0].Name)
		assert.Equal(t, []string{"doc-b", "doc-a"}, ts[0].Bundles[0].Documents)
	})

	t.Run("Should reject malformed YAML", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "targets.yaml", []byte("targets: [\n"), 0o644))
		_, err := LoadTargets(fs, "targets.yaml")
		assert.Error(t, err)
	})

	t.Run("Should fail for a missing file", func(t *testing.T) {
		_, err := LoadTargets(afero.NewMemMapFs(), "targets.yaml")
		assert.Error(t, err)
	})
}
