// Package project registers HDL libraries and their source files for a test run.
package project

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"hdlt/internal/config"
	"hdlt/internal/discovery"
	"hdlt/internal/domain"
)

var libraryNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Project is a configured test session: a set of named libraries
type Project struct {
	config    *config.Config
	scanner   *discovery.Scanner
	parser    *discovery.Parser
	libraries []*Library
	warnings  []string
}

// Library is a named grouping of HDL source files compiled together
type Library struct {
	Name    string
	project *Project
	files   []*SourceFile
	byPath  map[string]*SourceFile
}

// SourceFile is a registered HDL source file
type SourceFile struct {
	Path        string
	Library     string
	IncludeDirs []string
	Defines     map[string]string
}

// SourceOption customizes files registered by AddSourceFiles
type SourceOption func(*SourceFile)

// WithIncludeDirs declares include directories used when compiling the files
func WithIncludeDirs(dirs ...string) SourceOption {
	return func(f *SourceFile) {
		f.IncludeDirs = appendUnique(f.IncludeDirs, dirs...)
	}
}

// WithDefines declares preprocessor defines used when compiling the files
func WithDefines(defines map[string]string) SourceOption {
	return func(f *SourceFile) {
		for k, v := range defines {
			f.Defines[k] = v
		}
	}
}

// New creates an empty project
func New(cfg *config.Config) *Project {
	return &Project{
		config:  cfg,
		scanner: discovery.NewScanner(),
		parser:  discovery.NewParser(),
	}
}

// AddLibrary registers a new library
func (p *Project) AddLibrary(name string) (*Library, error) {
	if !libraryNamePattern.MatchString(name) {
		return nil, fmt.Errorf("invalid library name %q", name)
	}
	if p.Library(name) != nil {
		return nil, fmt.Errorf("library %q already exists", name)
	}

	lib := &Library{
		Name:    name,
		project: p,
		byPath:  make(map[string]*SourceFile),
	}
	p.libraries = append(p.libraries, lib)
	return lib, nil
}

// Library returns the library with the given name, or nil
func (p *Project) Library(name string) *Library {
	for _, lib := range p.libraries {
		if strings.EqualFold(lib.Name, name) {
			return lib
		}
	}
	return nil
}

// Libraries returns all libraries in registration order
func (p *Project) Libraries() []*Library {
	return p.libraries
}

// Warnings returns non-fatal registration issues, such as globs matching nothing
func (p *Project) Warnings() []string {
	return p.warnings
}

// AddSourceFiles registers every file matching pattern. Matching nothing is not an error.
func (l *Library) AddSourceFiles(pattern string, opts ...SourceOption) ([]*SourceFile, error) {
	paths, err := l.project.scanner.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		l.project.warnings = append(l.project.warnings,
			fmt.Sprintf("pattern %q did not match any file in library %s", pattern, l.Name))
		return []*SourceFile{}, nil
	}

	added := make([]*SourceFile, 0, len(paths))
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", path, err)
		}

		file, ok := l.byPath[abs]
		if !ok {
			file = &SourceFile{Path: abs, Library: l.Name, Defines: map[string]string{}}
			l.byPath[abs] = file
			l.files = append(l.files, file)
		}
		for _, opt := range opts {
			opt(file)
		}
		added = append(added, file)
	}
	return added, nil
}

// Files returns the library's source files in registration order
func (l *Library) Files() []*SourceFile {
	return l.files
}

// CompileUnit is a set of library files sharing include directories and defines
type CompileUnit struct {
	Paths       []string
	IncludeDirs []string
	Defines     map[string]string
}

// CompileUnits groups the library's files by their compile settings, in registration order
func (l *Library) CompileUnits() []CompileUnit {
	var units []CompileUnit
	index := make(map[string]int)
	for _, f := range l.files {
		key := f.settingsKey()
		i, ok := index[key]
		if !ok {
			i = len(units)
			index[key] = i
			units = append(units, CompileUnit{IncludeDirs: f.IncludeDirs, Defines: f.Defines})
		}
		units[i].Paths = append(units[i].Paths, f.Path)
	}
	return units
}

func (f *SourceFile) settingsKey() string {
	var b strings.Builder
	for _, dir := range f.IncludeDirs {
		b.WriteString(dir)
		b.WriteByte(0)
	}
	b.WriteByte(1)
	for _, k := range SortedKeys(f.Defines) {
		b.WriteString(k + "=" + f.Defines[k])
		b.WriteByte(0)
	}
	return b.String()
}

// Testbenches returns every registered file named tb_*, with its top module resolved
func (p *Project) Testbenches() ([]domain.Testbench, error) {
	var testbenches []domain.Testbench
	for _, lib := range p.libraries {
		for _, f := range lib.files {
			if !IsTestbench(f.Path) {
				continue
			}
			top, err := p.topModule(f.Path)
			if err != nil {
				return nil, err
			}
			testbenches = append(testbenches, domain.Testbench{
				Library:     lib.Name,
				Path:        f.Path,
				Top:         top,
				IncludeDirs: f.IncludeDirs,
				Defines:     f.Defines,
			})
		}
	}
	return testbenches, nil
}

// Tests expands every testbench into one test per declared test case
func (p *Project) Tests() ([]domain.Test, error) {
	testbenches, err := p.Testbenches()
	if err != nil {
		return nil, err
	}

	var tests []domain.Test
	for _, tb := range testbenches {
		cases, err := p.parser.FindTestCases(tb.Path)
		if err != nil {
			return nil, err
		}
		for _, c := range cases {
			tests = append(tests, domain.Test{Testbench: tb, Case: c})
		}
	}
	return tests, nil
}

// IsTestbench reports whether a file is a testbench by naming convention
func IsTestbench(path string) bool {
	return strings.HasPrefix(filepath.Base(path), "tb_")
}

func (p *Project) topModule(path string) (string, error) {
	modules, err := p.parser.FindModules(path)
	if err != nil {
		return "", err
	}
	for _, m := range modules {
		if strings.HasPrefix(m, "tb_") {
			return m, nil
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func appendUnique(list []string, items ...string) []string {
	seen := make(map[string]bool, len(list))
	for _, s := range list {
		seen[s] = true
	}
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			list = append(list, s)
		}
	}
	return list
}

// SortedKeys returns the keys of m in sorted order
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
