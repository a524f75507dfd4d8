package compiler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var headerLen = utf8.RuneCountInString(Header)

func testContext() context.Context {
	return logger.ContextWithLogger(context.Background(), logger.NewLogger(logger.TestConfig()))
}

func writeSkill(t *testing.T, fs afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, filepath.Join("skills", name, DocumentFile), []byte(content), 0o644))
}

func readArtifact(t *testing.T, fs afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	return string(data)
}

func singleTarget(budget int, docs ...string) Targets {
	return Targets{{
		Name:      "test",
		OutputDir: "out",
		Budget:    budget,
		Bundles:   []Bundle{{Name: "bundle", Documents: docs}},
	}}
}

func TestCompiler_BuildBundle(t *testing.T) {
	ctx := testContext()

	t.Run("Should join documents in declared order after the header", func(t *testing.T) {
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{
			"doc-a": "---\nname: doc-a\n---\n\n# A\n",
			"doc-b": "# B",
		}))
		text, report, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a", "doc-b"}}, 1000)
		require.NoError(t, err)
		assert.Equal(t, Header+"# A"+Separator+"# B", text)
		assert.Equal(t, headerLen+6, report.Chars)
		assert.Equal(t, 2, report.Count(StatusIncluded))
	})

	t.Run("Should skip a missing document and keep the order of the rest", func(t *testing.T) {
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{"doc-a": "A", "doc-c": "C"}))
		text, report, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a", "doc-b", "doc-c"}}, 1000)
		require.NoError(t, err)
		assert.Equal(t, Header+"A"+Separator+"C", text)
		assert.Equal(t, []DocumentReport{
			{Name: "doc-a", Status: StatusIncluded, Chars: 1},
			{Name: "doc-b", Status: StatusMissing},
			{Name: "doc-c", Status: StatusIncluded, Chars: 1},
		}, report.Documents)
	})

	t.Run("Should skip a document that is empty after frontmatter removal", func(t *testing.T) {
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{"doc-a": "---\nname: a\n---\n  \n", "doc-b": "B"}))
		text, _, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a", "doc-b"}}, 1000)
		require.NoError(t, err)
		assert.Equal(t, Header+"B", text)
	})

	t.Run("Should truncate the overflowing document and stop", func(t *testing.T) {
		a := strings.Repeat("a", 1000)
		b := strings.Repeat("b", 2000)
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{"doc-a": a, "doc-b": b, "doc-c": "c"}))
		budget := headerLen + 1000 + 600
		text, report, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a", "doc-b", "doc-c"}}, budget)
		require.NoError(t, err)
		want := Header + a + Separator + "## doc-b\n\n" + strings.Repeat("b", 600) + "\n\n[truncated]"
		assert.Equal(t, want, text)
		assert.Equal(t, budget, report.Chars)
		assert.True(t, report.Truncated())
		assert.Len(t, report.Documents, 2)
	})

	t.Run("Should drop the overflowing document when 500 or fewer chars remain", func(t *testing.T) {
		a := strings.Repeat("a", 1000)
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{
			"doc-a": a,
			"doc-b": strings.Repeat("b", 2000),
			"doc-c": "c",
		}))
		text, report, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a", "doc-b", "doc-c"}}, headerLen+1000+500)
		require.NoError(t, err)
		assert.Equal(t, Header+a, text)
		assert.NotContains(t, text, "[truncated]")
		assert.Equal(t, StatusDropped, report.Documents[1].Status)
	})

	t.Run("Should include a document that fits the budget exactly", func(t *testing.T) {
		a := strings.Repeat("a", 700)
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{"doc-a": a, "doc-b": strings.Repeat("b", 700)}))
		text, _, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a", "doc-b"}}, headerLen+700)
		require.NoError(t, err)
		assert.Equal(t, Header+a, text)
	})

	t.Run("Should measure lengths in code points", func(t *testing.T) {
		doc := strings.Repeat("é", 1000)
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{"doc-a": doc}))
		text, report, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a"}}, headerLen+800)
		require.NoError(t, err)
		assert.Equal(t, Header+"## doc-a\n\n"+strings.Repeat("é", 800)+"\n\n[truncated]", text)
		assert.Equal(t, headerLen+800, report.Chars)
	})

	t.Run("Should emit only the header when the budget does not exceed it", func(t *testing.T) {
		c := New(afero.NewMemMapFs(), "skills", WithSource(MapSource{"doc-a": "A"}))
		text, _, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: []string{"doc-a"}}, headerLen)
		require.NoError(t, err)
		assert.Equal(t, Header, text)
	})

	t.Run("Should never charge more than the budget", func(t *testing.T) {
		docs := MapSource{}
		names := []string{}
		for i, n := range []int{120, 4000, 30, 900, 2500, 75, 1800} {
			name := "doc-" + string(rune('a'+i))
			docs[name] = strings.Repeat("x", n)
			names = append(names, name)
		}
		c := New(afero.NewMemMapFs(), "skills", WithSource(docs))
		for _, budget := range []int{headerLen + 1, headerLen + 600, 2000, 5000, 9000, 20000} {
			_, report, err := c.BuildBundle(ctx, Bundle{Name: "x", Documents: names}, budget)
			require.NoError(t, err)
			assert.LessOrEqual(t, report.Chars, budget, "budget %d", budget)
		}
	})

	t.Run("Should bound the artifact by budget plus separators and decoration", func(t *testing.T) {
		docs := MapSource{}
		names := []string{}
		for i := range 20 {
			name := "small-" + string(rune('a'+i))
			docs[name] = strings.Repeat("y", 45)
			names = append(names, name)
		}
		c := New(afero.NewMemMapFs(), "skills", WithSource(docs))
		for _, budget := range []int{1000, headerLen + 300, headerLen + 45*20} {
			text, report, err := c.BuildBundle(ctx, Bundle{Name: "small", Documents: names}, budget)
			require.NoError(t, err)
			sections := 0
			decoration := 0
			for _, d := range report.Documents {
				switch d.Status {
				case StatusIncluded:
					sections++
				case StatusTruncated:
					sections++
					decoration = utf8.RuneCountInString("## "+d.Name+"\n\n") + utf8.RuneCountInString(TruncationMarker)
				}
			}
			separators := max(sections-1, 0) * utf8.RuneCountInString(Separator)
			body := utf8.RuneCountInString(text) - headerLen
			assert.LessOrEqual(t, body, budget-headerLen+separators+decoration, "budget %d", budget)
			assert.Equal(t, report.Chars-headerLen+separators+decoration, body, "budget %d", budget)
		}
	})
}

func TestCompiler_Run(t *testing.T) {
	ctx := testContext()

	seed := func(t *testing.T) afero.Fs {
		fs := afero.NewMemMapFs()
		writeSkill(t, fs, "doc-a", "---\nname: doc-a\ndescription: first\n---\n# A\n\nalpha")
		writeSkill(t, fs, "doc-b", "# B\r\n\r\nbeta")
		return fs
	}

	t.Run("Should write one artifact per bundle", func(t *testing.T) {
		fs := seed(t)
		reports, err := New(fs, "skills").Run(ctx, singleTarget(1000, "doc-a", "doc-b"), "")
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, filepath.Join("out", "bundle.lock.md"), reports[0].Path)
		assert.Equal(t, "test", reports[0].Target)
		got := readArtifact(t, fs, reports[0].Path)
		assert.Equal(t, Header+"# A\n\nalpha"+Separator+"# B\r\n\r\nbeta", got)
	})

	t.Run("Should produce byte-identical artifacts on rerun", func(t *testing.T) {
		first, second := seed(t), seed(t)
		targets := singleTarget(headerLen+600, "doc-a", "doc-b")
		_, err := New(first, "skills").Run(ctx, targets, "")
		require.NoError(t, err)
		_, err = New(second, "skills").Run(ctx, targets, "")
		require.NoError(t, err)
		path := filepath.Join("out", "bundle.lock.md")
		assert.Equal(t, readArtifact(t, first, path), readArtifact(t, second, path))
	})

	t.Run("Should resolve output directories against the output root", func(t *testing.T) {
		fs := seed(t)
		reports, err := New(fs, "skills", WithOutputRoot("dist")).Run(ctx, singleTarget(1000, "doc-a"), "test")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("dist", "out", "bundle.lock.md"), reports[0].Path)
		exists, err := afero.Exists(fs, reports[0].Path)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Should compile several targets and keep report order", func(t *testing.T) {
		fs := seed(t)
		targets := Targets{
			{Name: "one", OutputDir: "one", Budget: 1000, Bundles: []Bundle{
				{Name: "first", Documents: []string{"doc-a"}},
				{Name: "second", Documents: []string{"doc-b"}},
			}},
			{Name: "two", OutputDir: "two", Budget: 1000, Bundles: []Bundle{{Name: "third", Documents: []string{"doc-a"}}}},
		}
		reports, err := New(fs, "skills").Run(ctx, targets, "")
		require.NoError(t, err)
		var order []string
		for _, r := range reports {
			order = append(order, r.Target+"/"+r.Bundle)
		}
		assert.Equal(t, []string{"one/first", "one/second", "two/third"}, order)
	})

	t.Run("Should fail when the skills directory is missing", func(t *testing.T) {
		_, err := New(afero.NewMemMapFs(), "skills").Run(ctx, singleTarget(1000, "doc-a"), "")
		assert.ErrorIs(t, err, ErrSkillsDirNotFound)
	})

	t.Run("Should fail for an unknown target and list the available ones", func(t *testing.T) {
		_, err := New(seed(t), "skills").Run(ctx, BuiltinTargets(), "nope")
		require.ErrorIs(t, err, ErrUnknownTarget)
		assert.Contains(t, err.Error(), "copilot-extension, agentic-workflows")
	})

	t.Run("Should not write anything when a target is invalid", func(t *testing.T) {
		fs := seed(t)
		_, err := New(fs, "skills").Run(ctx, singleTarget(0, "doc-a"), "")
		assert.ErrorIs(t, err, ErrInvalidTarget)
		exists, _ := afero.DirExists(fs, "out")
		assert.False(t, exists)
	})
}

func TestStripFrontmatter(t *testing.T) {
	t.Run("Should strip and decode a leading block", func(t *testing.T) {
		body, meta := StripFrontmatter("---\nname: incremental-build\ndescription: Inputs and outputs\n---\nbody")
		assert.Equal(t, "body", body)
		assert.Equal(t, Frontmatter{Name: "incremental-build", Description: "Inputs and outputs"}, meta)
	})

	t.Run("Should tolerate CRLF line endings", func(t *testing.T) {
		body, meta := StripFrontmatter("---\r\nname: x\r\n---\r\nbody")
		assert.Equal(t, "body", body)
		assert.Equal(t, "x", meta.Name)
	})

	t.Run("Should strip a block that fails to decode", func(t *testing.T) {
		body, meta := StripFrontmatter("---\nname: [unclosed\n---\nbody")
		assert.Equal(t, "body", body)
		assert.Equal(t, Frontmatter{}, meta)
	})

	t.Run("Should leave content without a leading block untouched", func(t *testing.T) {
		in := "# Title\n---\nname: x\n---\n"
		body, _ := StripFrontmatter(in)
		assert.Equal(t, in, body)
	})
}
