// Package collection scans a content root and produces the document records
// the rest of the build pipeline operates on.
package collection

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"git.home.luguber.info/inful/doctree/internal/errors"
	"git.home.luguber.info/inful/doctree/internal/frontmatter"
	"git.home.luguber.info/inful/doctree/internal/logfields"
	"git.home.luguber.info/inful/doctree/internal/markdown"
)

// DefaultExtensions are the content file extensions loaded when the config
// does not override them.
var DefaultExtensions = []string{".md", ".mdx"}

// Loader walks a content root and reads frontmatter-annotated documents.
type Loader struct {
	root        string
	extensions  map[string]struct{}
	concurrency int
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtensions overrides the content file extensions (each including the dot).
func WithExtensions(exts []string) Option {
	return func(l *Loader) {
		l.extensions = make(map[string]struct{}, len(exts))
		for _, e := range exts {
			l.extensions[strings.ToLower(e)] = struct{}{}
		}
	}
}

// WithConcurrency bounds the number of parallel file reads. Values <1 are
// coerced to 1 (sequential).
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		if n < 1 {
			n = 1
		}
		l.concurrency = n
	}
}

// NewLoader creates a Loader rooted at the given content directory.
func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		root:        root,
		concurrency: 1,
	}
	WithExtensions(DefaultExtensions)(l)
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load scans the content root and returns one Document per content file,
// sorted by relative path. Ordering never depends on filesystem read order,
// so repeated loads over unchanged files are byte-identical.
//
// A missing root is fatal. Per-file frontmatter problems are returned as
// issues alongside the documents that did load.
func (l *Loader) Load() ([]Document, []error, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.ContentRootNotFound(l.root)
		}
		return nil, nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "stat content root").
			WithContext("root", l.root)
	}
	if !info.IsDir() {
		return nil, nil, errors.ContentRootNotFound(l.root)
	}

	paths, err := l.collectPaths()
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("Content files discovered", logfields.Documents(len(paths)))

	if l.concurrency <= 1 {
		return l.readSequential(paths)
	}
	return l.readParallel(paths)
}

// collectPaths walks the root and returns matching relative paths, sorted.
func (l *Loader) collectPaths() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories (e.g. .git, .obsidian) are never content.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") && path != l.root {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := l.extensions[ext]; !ok {
			return nil
		}
		rel, relErr := filepath.Rel(l.root, path)
		if relErr != nil {
			return relErr
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal, "walk content root").
			WithContext("root", l.root)
	}
	sort.Strings(paths)
	return paths, nil
}

func (l *Loader) readSequential(paths []string) ([]Document, []error, error) {
	docs := make([]Document, 0, len(paths))
	var issues []error
	for _, rel := range paths {
		doc, err := l.readDocument(rel)
		if err != nil {
			issues = append(issues, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, issues, nil
}

// readParallel reads files with bounded workers. Results are collected into
// per-index slots and compacted afterwards, so output order stays the sorted
// path order regardless of completion order.
func (l *Loader) readParallel(paths []string) ([]Document, []error, error) {
	type slot struct {
		doc Document
		err error
	}
	slots := make([]slot, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, l.concurrency)
	for i, rel := range paths {
		wg.Add(1)
		go func(i int, rel string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			doc, err := l.readDocument(rel)
			slots[i] = slot{doc: doc, err: err}
		}(i, rel)
	}
	wg.Wait()

	docs := make([]Document, 0, len(paths))
	var issues []error
	for _, s := range slots {
		if s.err != nil {
			issues = append(issues, s.err)
			continue
		}
		docs = append(docs, s.doc)
	}
	return docs, issues, nil
}

// readDocument reads and splits a single content file.
func (l *Loader) readDocument(rel string) (Document, error) {
	abs := filepath.Join(l.root, filepath.FromSlash(rel))
	content, err := os.ReadFile(abs)
	if err != nil {
		return Document{}, errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityError, "read content file").
			WithContext("path", rel)
	}

	raw, body, had, err := frontmatter.Split(content)
	if err != nil {
		return Document{}, errors.MalformedFrontmatter(rel, err)
	}
	if !had {
		return Document{}, errors.MalformedFrontmatter(rel, fmt.Errorf("missing frontmatter delimiters"))
	}

	fields, err := frontmatter.ParseYAML(raw)
	if err != nil {
		return Document{}, errors.MalformedFrontmatter(rel, err)
	}

	sum := sha256.Sum256(body)

	return Document{
		Path:        rel,
		Frontmatter: fields,
		Body:        body,
		BodyHash:    hex.EncodeToString(sum[:]),
		Headings:    markdown.ExtractHeadings(body),
	}, nil
}
