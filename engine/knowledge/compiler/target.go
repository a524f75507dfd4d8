package compiler

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Bundle is a named, ordered list of documents compiled into one artifact.
type Bundle struct {
	Name      string   `yaml:"name"      validate:"required,slug"`
	Documents []string `yaml:"documents" validate:"required,min=1,dive,required,slug"`
}

// Target is a named output destination with its character budget.
type Target struct {
	Name      string   `yaml:"name"       validate:"required,slug"`
	OutputDir string   `yaml:"output_dir" validate:"required"`
	Budget    int      `yaml:"budget"     validate:"gt=0"`
	Bundles   []Bundle `yaml:"bundles"    validate:"required,min=1,dive"`
}

// Targets keeps declaration order.
type Targets []Target

type targetsFile struct {
	Targets Targets `yaml:"targets"`
}

// BuiltinTargets returns the default targets. Bundle and document order
// is significant.
func BuiltinTargets() Targets {
	return Targets{
		{
			Name:      "copilot-extension",
			OutputDir: "knowledge",
			Budget:    50000,
			Bundles: []Bundle{
				{Name: "build-errors", Documents: []string{
					"common-build-errors",
					"sourcegen-analyzer-failures",
					"nuget-restore-failures",
					"sdk-workload-resolution",
					"multitarget-tfm-issues",
					"ci-build-failures",
				}},
				{Name: "performance", Documents: []string{
					"build-perf-baseline",
					"build-perf-diagnostics",
					"incremental-build",
					"build-parallelism",
					"build-caching",
					"eval-performance",
				}},
				{Name: "style-guide", Documents: []string{
					"msbuild-style-guide",
					"msbuild-antipatterns",
					"directory-build-organization",
					"check-bin-obj-clash",
					"including-generated-files",
				}},
				{Name: "modernization", Documents: []string{
					"msbuild-modernization",
					"directory-build-organization",
				}},
			},
		},
		{
			Name:      "agentic-workflows",
			OutputDir: filepath.Join("templates", "agentic-workflows", "shared", "compiled"),
			// workflow runners have tighter context budgets
			Budget: 40000,
			Bundles: []Bundle{
				{Name: "build-failure-knowledge", Documents: []string{
					"common-build-errors",
					"sourcegen-analyzer-failures",
					"nuget-restore-failures",
					"sdk-workload-resolution",
					"binlog-failure-analysis",
				}},
				{Name: "pr-review-knowledge", Documents: []string{
					"msbuild-antipatterns",
					"msbuild-style-guide",
					"msbuild-modernization",
					"directory-build-organization",
					"check-bin-obj-clash",
					"incremental-build",
				}},
				{Name: "perf-audit-knowledge", Documents: []string{
					"build-perf-baseline",
					"build-perf-diagnostics",
					"incremental-build",
					"build-parallelism",
					"build-caching",
					"eval-performance",
				}},
			},
		},
	}
}

// LoadTargets reads a YAML targets file and validates it.
func LoadTargets(fs afero.Fs, path string) (Targets, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read targets file: %w", err)
	}
	var file targetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse targets file %s: %w", path, err)
	}
	if err := file.Targets.Validate(); err != nil {
		return nil, err
	}
	return file.Targets, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.IsSlug(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks field constraints plus uniqueness of target names, output
// directories and bundle names within a target.
func (ts Targets) Validate() error {
	if len(ts) == 0 {
		return fmt.Errorf("%w: no targets declared", ErrInvalidTarget)
	}
	v := newValidator()
	names := make(map[string]struct{}, len(ts))
	dirs := make(map[string]string, len(ts))
	for i := range ts {
		t := &ts[i]
		if err := v.Struct(t); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidTarget, t.Name, err)
		}
		if _, dup := names[t.Name]; dup {
			return fmt.Errorf("%w: duplicate target %q", ErrInvalidTarget, t.Name)
		}
		names[t.Name] = struct{}{}
		dir := filepath.Clean(t.OutputDir)
		if other, dup := dirs[dir]; dup {
			return fmt.Errorf("%w: targets %q and %q share output directory %s", ErrInvalidTarget, other, t.Name, dir)
		}
		dirs[dir] = t.Name
		bundles := make(map[string]struct{}, len(t.Bundles))
		for _, b := range t.Bundles {
			if _, dup := bundles[b.Name]; dup {
				return fmt.Errorf("%w: %s: duplicate bundle %q", ErrInvalidTarget, t.Name, b.Name)
			}
			bundles[b.Name] = struct{}{}
		}
	}
	return nil
}

// Names lists target names in declaration order.
func (ts Targets) Names() []string {
	out := make([]string, 0, len(ts))
	for i := range ts {
		out = append(out, ts[i].Name)
	}
	return out
}

// Select returns the named target, or every target when name is empty.
func (ts Targets) Select(name string) (Targets, error) {
	if name == "" {
		return ts, nil
	}
	for i := range ts {
		if ts[i].Name == name {
			return Targets{ts[i]}, nil
		}
	}
	return nil, fmt.Errorf("%w '%s'; available targets: %s", ErrUnknownTarget, name, strings.Join(ts.Names(), ", "))
}
