package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// ErrNoSources is returned when Load is called with no sources.
var ErrNoSources = errors.New("loader: no sources provided")

// Loader produces an initial symbol.Graph from external metadata. This
// is the C2 contract; JSONLoader below is the one reference
// implementation dtsforge ships.
type Loader interface {
	Load(ctx context.Context, sources []Source) (*symbol.Graph, []diagnostics.Diagnostic, error)
}

// JSONLoader reads a directory of *.apidump.json files and translates
// each into symbol.Graph entities. Mirrors the teacher's
// loadAllModules: a bounded-parallel read-and-decode fan-out followed
// by a single-threaded, sorted merge so the resulting graph is
// deterministic regardless of goroutine scheduling.
type JSONLoader struct {
	Logger *slog.Logger
}

// NewJSONLoader returns a JSONLoader. A nil logger disables logging.
func NewJSONLoader(logger *slog.Logger) *JSONLoader {
	return &JSONLoader{Logger: logger}
}

func (l *JSONLoader) logEnabled(level slog.Level) bool {
	return l.Logger != nil && l.Logger.Enabled(context.Background(), level)
}

// Load implements Loader.
func (l *JSONLoader) Load(ctx context.Context, sources []Source) (*symbol.Graph, []diagnostics.Diagnostic, error) {
	if len(sources) == 0 {
		return nil, nil, ErrNoSources
	}

	var paths []string
	for _, src := range sources {
		files, err := src.ListFiles()
		if err != nil {
			return nil, nil, fmt.Errorf("loader: listing files: %w", err)
		}
		paths = append(paths, files...)
	}
	sort.Strings(paths)

	sink := diagnostics.NewSink(diagnostics.DefaultConfig())

	if len(paths) == 0 {
		return symbol.New(), sink.Diagnostics(), nil
	}

	if l.logEnabled(slog.LevelInfo) {
		l.Logger.LogAttrs(ctx, slog.LevelInfo, "loading assembly dumps", slog.Int("files", len(paths)))
	}

	type decoded struct {
		path string
		dump *AssemblyDump
	}

	results := make(chan decoded, len(paths))
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for _, path := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			content, err := l.readOne(sources, path)
			if err != nil {
				sink.Report(diagnostics.Diagnostic{
					Severity:  diagnostics.SeverityError,
					Code:      diagnostics.CodeAssemblyUnreadable,
					Message:   err.Error(),
					Namespace: path,
				})
				return
			}
			dump, err := decodeAssemblyDump(content)
			if err != nil {
				sink.Report(diagnostics.Diagnostic{
					Severity:  diagnostics.SeverityError,
					Code:      diagnostics.CodeAssemblyMalformed,
					Message:   err.Error(),
					Namespace: path,
				})
				return
			}
			results <- decoded{path: path, dump: dump}
		}(path)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var decodedDumps []decoded
	for r := range results {
		decodedDumps = append(decodedDumps, r)
	}
	if ctx.Err() != nil {
		return nil, sink.Diagnostics(), ctx.Err()
	}

	sort.Slice(decodedDumps, func(i, j int) bool { return decodedDumps[i].path < decodedDumps[j].path })

	seenAssembly := make(map[string]string) // assembly name -> first path
	g := symbol.New()
	tr := &translator{sink: sink}

	for _, r := range decodedDumps {
		if firstPath, dup := seenAssembly[r.dump.Assembly]; dup {
			sink.Report(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityWarning,
				Code:     diagnostics.CodeDuplicateAssembly,
				Message:  "assembly \"" + r.dump.Assembly + "\" already loaded from " + firstPath,
				Namespace: r.path,
			})
			continue
		}
		seenAssembly[r.dump.Assembly] = r.path

		for _, ns := range r.dump.Namespaces {
			for _, td := range ns.Types {
				t, ok := tr.translateType(r.dump.Assembly, ns.Name, td)
				if !ok {
					continue
				}
				g = g.WithNewType(t)
			}
		}
	}

	if l.logEnabled(slog.LevelInfo) {
		l.Logger.LogAttrs(ctx, slog.LevelInfo, "load complete",
			slog.Int("assemblies", len(seenAssembly)),
			slog.Int("types", len(g.TypeIds())))
	}

	return g, sink.Diagnostics(), nil
}

func (l *JSONLoader) readOne(sources []Source, path string) ([]byte, error) {
	var rc io.ReadCloser
	var err error
	for _, src := range sources {
		rc, err = src.Open(path)
		if err == nil {
			break
		}
	}
	if rc == nil {
		if err == nil {
			err = fmt.Errorf("loader: no source could open %s", path)
		}
		return nil, err
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	return content, nil
}
