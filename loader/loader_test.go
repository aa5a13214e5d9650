package loader

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dtsforge/dtsforge/internal/ident"
)

type memSource struct {
	files map[string]string
}

func (m *memSource) ListFiles() ([]string, error) {
	out := make([]string, 0, len(m.files))
	for path := range m.files {
		out = append(out, path)
	}
	return out, nil
}

func (m *memSource) Open(path string) (io.ReadCloser, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

const widgetDump = `{
  "assembly": "Widgets",
  "namespaces": [
    {
      "name": "Widgets.Core",
      "types": [
        {
          "fullName": "Widgets.Core.Thing",
          "clrName": "Thing",
          "kind": "class",
          "accessibility": "public",
          "members": [
            {
              "clrName": "Name",
              "kind": "property",
              "visibility": "public",
              "fieldType": {"kind": "named", "assembly": "mscorlib", "fullName": "System.String"},
              "hasGetter": true,
              "hasSetter": true
            }
          ]
        }
      ]
    }
  ]
}`

func TestJSONLoaderTranslatesTypesAndMembers(t *testing.T) {
	src := &memSource{files: map[string]string{"widgets.apidump.json": widgetDump}}
	l := NewJSONLoader(nil)

	g, diags, err := l.Load(context.Background(), []Source{src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	id := ident.Type("Widgets", "Widgets.Core.Thing", 0)
	ty, ok := g.Type(id)
	if !ok {
		t.Fatalf("expected type %s in graph", id)
	}
	if ty.ClrName != "Thing" || ty.Namespace != "Widgets.Core" {
		t.Errorf("unexpected type: %+v", ty)
	}
	if len(ty.Members) != 1 || ty.Members[0].ClrName != "Name" {
		t.Errorf("expected one Name member, got %+v", ty.Members)
	}
}

func TestJSONLoaderReportsDuplicateAssembly(t *testing.T) {
	src := &memSource{files: map[string]string{
		"a/widgets.apidump.json": widgetDump,
		"b/widgets.apidump.json": widgetDump,
	}}
	l := NewJSONLoader(nil)

	_, diags, err := l.Load(context.Background(), []Source{src})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, d := range diags {
		if d.Code == "duplicate-assembly" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a duplicate-assembly diagnostic, got %v", diags)
	}
}

func TestJSONLoaderRejectsNoSources(t *testing.T) {
	l := NewJSONLoader(nil)
	if _, _, err := l.Load(context.Background(), nil); err != ErrNoSources {
		t.Errorf("expected ErrNoSources, got %v", err)
	}
}
