// Package source loads the versioning and backlog documents the roadmap is
// compiled from.
package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// Documents holds the raw text of both planning documents.
type Documents struct {
	Versioning string
	Backlog    string
}

// Loader fetches the current documents.
type Loader interface {
	Load(ctx context.Context) (Documents, error)
}

// FileLoader reads both documents from disk on every Load.
type FileLoader struct {
	VersioningPath string
	BacklogPath    string
}

func NewFileLoader(versioningPath, backlogPath string) *FileLoader {
	return &FileLoader{VersioningPath: versioningPath, BacklogPath: backlogPath}
}

func (l *FileLoader) Load(ctx context.Context) (Documents, error) {
	if err := ctx.Err(); err != nil {
		return Documents{}, err
	}
	versioning, err := readDocument("versioning", l.VersioningPath)
	if err != nil {
		return Documents{}, err
	}
	backlog, err := readDocument("backlog", l.BacklogPath)
	if err != nil {
		return Documents{}, err
	}
	return Documents{Versioning: versioning, Backlog: backlog}, nil
}

func readDocument(doc, path string) (string, error) {
	if path == "" {
		return "", roadmap.MissingSource(doc)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", &roadmap.Error{Code: roadmap.CodeMissingSource, Op: "load " + doc, Err: err}
	}
	if err != nil {
		return "", &roadmap.Error{Code: roadmap.CodeSourceUnavailable, Op: "load " + doc, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	return string(data), nil
}

// StaticLoader returns fixed documents. Used by tests and by callers that
// already hold the text.
type StaticLoader struct {
	Docs Documents
}

func (l StaticLoader) Load(ctx context.Context) (Documents, error) {
	if err := ctx.Err(); err != nil {
		return Documents{}, err
	}
	return l.Docs, nil
}
