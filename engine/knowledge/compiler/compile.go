// Package compiler packs source documents into size-bounded knowledge
// bundles and writes them as artifacts.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/msbuild-skills/msbuild-expert/pkg/logger"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Header opens every artifact.
	Header = "<!-- AUTO-GENERATED - DO NOT EDIT. Regenerate with: msbuild-expert compile -->\n\n"
	// Separator joins sections inside an artifact.
	Separator = "\n\n---\n\n"
	// TruncationMarker closes a truncated section.
	TruncationMarker = "\n\n[truncated]"
	// ArtifactExt is appended to the bundle name to form the artifact file name.
	ArtifactExt = ".lock.md"
	// MinTruncatedChars is the prefix length a truncated section must exceed
	// to be kept.
	MinTruncatedChars = 500
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Compiler turns targets into artifacts on an afero filesystem.
type Compiler struct {
	fs         afero.Fs
	source     DocumentSource
	sourceDir  string
	outputRoot string
	printer    *message.Printer
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithOutputRoot resolves relative target output directories against root.
func WithOutputRoot(root string) Option {
	return func(c *Compiler) { c.outputRoot = root }
}

// WithSource replaces the filesystem document source.
func WithSource(src DocumentSource) Option {
	return func(c *Compiler) { c.source = src }
}

// New returns a compiler reading documents from skillsDir on fs.
func New(fs afero.Fs, skillsDir string, opts ...Option) *Compiler {
	c := &Compiler{
		fs:        fs,
		source:    NewFSSource(fs, skillsDir),
		sourceDir: skillsDir,
		printer:   message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run compiles the selected target, or all targets when selected is empty.
// Targets compile concurrently; reports keep target then bundle order.
func (c *Compiler) Run(ctx context.Context, targets Targets, selected string) ([]BundleReport, error) {
	log := logger.FromContext(ctx)
	log.Info("Knowledge compiler", "source", c.sourceDir)
	if err := c.checkSource(); err != nil {
		return nil, err
	}
	chosen, err := targets.Select(selected)
	if err != nil {
		return nil, err
	}
	if err := chosen.Validate(); err != nil {
		return nil, err
	}
	results := make([][]BundleReport, len(chosen))
	g, gctx := errgroup.WithContext(ctx)
	for i := range chosen {
		g.Go(func() error {
			reports, err := c.CompileTarget(gctx, chosen[i])
			if err != nil {
				return err
			}
			results[i] = reports
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var all []BundleReport
	for _, r := range results {
		all = append(all, r...)
	}
	log.Info("Knowledge compilation complete", "bundles", len(all))
	return all, nil
}

func (c *Compiler) checkSource() error {
	if _, ok := c.source.(*FSSource); !ok {
		return nil
	}
	exists, err := afero.DirExists(c.fs, c.sourceDir)
	if err != nil {
		return fmt.Errorf("stat skills directory: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrSkillsDirNotFound, c.sourceDir)
	}
	return nil
}

// OutputDir returns the resolved output directory of t.
func (c *Compiler) OutputDir(t *Target) string {
	if c.outputRoot == "" || filepath.IsAbs(t.OutputDir) {
		return t.OutputDir
	}
	return filepath.Join(c.outputRoot, t.OutputDir)
}

// CompileTarget writes one artifact per bundle of t, in declared order.
func (c *Compiler) CompileTarget(ctx context.Context, t Target) ([]BundleReport, error) {
	dir := c.OutputDir(&t)
	log := logger.FromContext(ctx).With("target", t.Name)
	log.Info("Compiling target", "output", dir)
	if err := c.fs.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	reports := make([]BundleReport, 0, len(t.Bundles))
	for _, b := range t.Bundles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, report, err := c.BuildBundle(logger.ContextWithLogger(ctx, log), b, t.Budget)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, b.Name+ArtifactExt)
		if err := writeAtomic(c.fs, path, []byte(text)); err != nil {
			return nil, err
		}
		report.Target = t.Name
		report.Path = path
		log.Info(
			"Wrote artifact",
			"file", b.Name+ArtifactExt,
			"chars", c.printer.Sprintf("%d", report.TotalChars),
		)
		reports = append(reports, report)
	}
	return reports, nil
}

// BuildBundle packs the documents of b under budget and returns the artifact
// text. The header and each included document's content count against the
// budget; separators and the truncation decoration do not.
func (c *Compiler) BuildBundle(ctx context.Context, b Bundle, budget int) (string, BundleReport, error) {
	log := logger.FromContext(ctx).With("bundle", b.Name)
	report := BundleReport{Bundle: b.Name, Budget: budget}
	used := utf8.RuneCountInString(Header)
	if budget-used <= 0 {
		log.Warn("Budget does not exceed header size, writing header only", "budget", budget)
		report.Chars = used
		report.TotalChars = used
		return Header, report, nil
	}
	var sections []string
	for _, name := range b.Documents {
		doc, err := c.source.Load(name)
		if err != nil {
			if errors.Is(err, ErrDocumentNotFound) {
				log.Warn("Document not found, skipping", "document", name)
				report.add(name, StatusMissing, 0)
				continue
			}
			return "", report, err
		}
		if doc.Content == "" {
			log.Debug("Document empty after frontmatter removal, skipping", "document", name)
			report.add(name, StatusEmpty, 0)
			continue
		}
		size := utf8.RuneCountInString(doc.Content)
		if used+size > budget {
			log.Warn("Truncating document, would exceed char limit", "document", name, "limit", c.printer.Sprintf("%d", budget))
			remaining := budget - used
			if remaining > MinTruncatedChars {
				sections = append(sections, truncatedSection(name, doc.Content, remaining))
				used += remaining
				report.add(name, StatusTruncated, remaining)
			} else {
				report.add(name, StatusDropped, 0)
			}
			break
		}
		sections = append(sections, doc.Content)
		used += size
		report.add(name, StatusIncluded, size)
		log.Debug("Included document", "document", name, "title", doc.Meta.Name, "chars", c.printer.Sprintf("%d", size))
	}
	text := Header + strings.Join(sections, Separator)
	report.Chars = used
	report.TotalChars = utf8.RuneCountInString(text)
	return text, report, nil
}

func truncatedSection(name, content string, n int) string {
	return "## " + name + "\n\n" + runePrefix(content, n) + TruncationMarker
}

// runePrefix returns the first n code points of s.
func runePrefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func writeAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := fs.Chmod(tmpName, filePerm); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
