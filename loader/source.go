// Package loader ships the C2 reference implementation: a contract
// (Loader) plus one concrete loader (JSONLoader) that reads a directory
// of *.apidump.json files and translates them into an initial
// symbol.Graph. Grounded on the teacher's source.go/load.go split: a
// Source abstraction over where files live, decoupled from what a file
// means once read.
package loader

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DumpExtension is the only file extension JSONLoader recognizes.
const DumpExtension = ".apidump.json"

// Source locates assembly dump files by path. Mirrors the teacher's
// Source interface (source.go), narrowed to the one operation the JSON
// loader needs: an exhaustive file listing for bounded-parallel load.
type Source interface {
	// ListFiles returns every dump file path known to this source.
	ListFiles() ([]string, error)
	// Open opens the dump file at path for reading.
	Open(path string) (io.ReadCloser, error)
}

type dirSource struct {
	root string
}

// Dir creates a Source rooted at root, checking only that root is a
// readable directory; ListFiles walks it recursively for files named
// *.apidump.json each time it is called.
func Dir(root string) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: os.ErrInvalid}
	}
	return &dirSource{root: root}, nil
}

// MustDir is like Dir but panics on error.
func MustDir(root string) Source {
	src, err := Dir(root)
	if err != nil {
		panic(err)
	}
	return src
}

func (s *dirSource) ListFiles() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".json" && len(path) > len(DumpExtension) &&
			path[len(path)-len(DumpExtension):] == DumpExtension {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (s *dirSource) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// Multi combines multiple sources into one, concatenating their file
// listings. Mirrors the teacher's multiSource.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

type multiSource struct {
	sources []Source
}

func (s *multiSource) ListFiles() ([]string, error) {
	var files []string
	for _, src := range s.sources {
		f, err := src.ListFiles()
		if err != nil {
			return nil, err
		}
		files = append(files, f...)
	}
	return files, nil
}

func (s *multiSource) Open(path string) (io.ReadCloser, error) {
	for _, src := range s.sources {
		rc, err := src.Open(path)
		if err == nil {
			return rc, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fs.ErrNotExist
}
