package compiler

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DocumentFile is the file name of a document inside its directory.
const DocumentFile = "SKILL.md"

var frontmatterRe = regexp.MustCompile(`\A---\r?\n((?s:.*?))\r?\n---\r?\n`)

// Frontmatter is the metadata header of a document.
type Frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Document is a named source text with its frontmatter removed and trimmed.
type Document struct {
	Name    string
	Content string
	Meta    Frontmatter
}

// DocumentSource resolves document names. Implementations return
// ErrDocumentNotFound for names they do not know.
type DocumentSource interface {
	Load(name string) (Document, error)
}

// StripFrontmatter removes a leading YAML block and decodes it. A block that
// fails to decode is still removed and yields zero metadata.
func StripFrontmatter(content string) (string, Frontmatter) {
	var meta Frontmatter
	loc := frontmatterRe.FindStringSubmatchIndex(content)
	if loc == nil {
		return content, meta
	}
	if err := yaml.Unmarshal([]byte(content[loc[2]:loc[3]]), &meta); err != nil {
		meta = Frontmatter{}
	}
	return content[loc[1]:], meta
}

// ParseDocument builds a Document from raw file content.
func ParseDocument(name, raw string) Document {
	body, meta := StripFrontmatter(raw)
	return Document{Name: name, Content: strings.TrimSpace(body), Meta: meta}
}

// FSSource reads documents laid out as <root>/<name>/SKILL.md.
type FSSource struct {
	fs   afero.Fs
	root string
}

// NewFSSource returns a source rooted at root.
func NewFSSource(fs afero.Fs, root string) *FSSource {
	return &FSSource{fs: fs, root: root}
}

// Root returns the source directory.
func (s *FSSource) Root() string {
	return s.root
}

// Path returns the file path of the named document.
func (s *FSSource) Path(name string) string {
	return filepath.Join(s.root, name, DocumentFile)
}

func (s *FSSource) Load(name string) (Document, error) {
	path := s.Path(name)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return Document{}, fmt.Errorf("%w: %s (%s)", ErrDocumentNotFound, name, path)
		}
		return Document{}, fmt.Errorf("read document %s: %w", name, err)
	}
	return ParseDocument(name, string(data)), nil
}

// MapSource serves documents from memory. Content is parsed like a file.
type MapSource map[string]string

func (m MapSource) Load(name string) (Document, error) {
	raw, ok := m[name]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	return ParseDocument(name, raw), nil
}
