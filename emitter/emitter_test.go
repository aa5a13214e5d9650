package emitter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func buildWidgetPlan(t *testing.T) *planner.EmissionPlan {
	t.Helper()

	g := symbol.New()
	widgetId := ident.Type("Widgets", "Widgets.Core.Widget", 0)
	nameGetId := ident.Member("Widgets", "Widgets.Core.Widget", "Name", "()")
	frobId := ident.Member("Widgets", "Widgets.Core.Widget", "Frob", "()")

	g = g.WithNewType(symbol.TypeSymbol{
		StableId:      widgetId,
		Assembly:      "Widgets",
		FullName:      "Widgets.Core.Widget",
		ClrName:       "Widget",
		Namespace:     "Widgets.Core",
		Kind:          symbol.KindClass,
		Accessibility: symbol.Public,
		Members: []symbol.Member{
			{
				ClrName:    "Name",
				StableId:   nameGetId,
				Kind:       symbol.MemberProperty,
				EmitScope:  symbol.ClassSurface,
				Provenance: symbol.Declared,
				HasGetter:  true,
				HasSetter:  true,
				FieldType:  symbol.Named{Assembly: "mscorlib", FullName: "System.String"},
			},
			{
				ClrName:    "Frob",
				StableId:   frobId,
				Kind:       symbol.MemberMethod,
				EmitScope:  symbol.ClassSurface,
				Provenance: symbol.Declared,
				HasReturn:  true,
				ReturnType: symbol.Named{Assembly: "mscorlib", FullName: "System.Boolean"},
			},
		},
	})

	sink := diagnostics.NewSink(diagnostics.DefaultConfig())
	r := renamer.New(sink, nil)
	r.ReserveType(widgetId, "Widget", renamer.NamespacePublic("Widgets.Core"), "declared")
	base := renamer.TypeBase("Widgets.Core.Widget")
	r.ReserveMember(nameGetId, "name", base, "declared", false)
	r.ReserveMember(frobId, "frob", base, "declared", false)

	return planner.Build(shape.Result{Graph: g}, r, diagnostics.Logger{})
}

func TestBuildNamespaceMetadataIncludesDeclaredMembers(t *testing.T) {
	plan := buildWidgetPlan(t)
	ns, ok := plan.Graph.Namespace("Widgets.Core")
	if !ok {
		t.Fatalf("expected namespace Widgets.Core")
	}

	meta := buildNamespaceMetadata(ns, plan)
	if len(meta.Types) != 1 {
		t.Fatalf("expected one type, got %d", len(meta.Types))
	}
	tm := meta.Types[0]
	if tm.ClrName != "Widget" || tm.TSEmitName != "Widget" {
		t.Errorf("unexpected type metadata: %+v", tm)
	}
	if len(tm.Properties) != 1 || tm.Properties[0].ClrName != "Name" {
		t.Errorf("expected one Name property, got %+v", tm.Properties)
	}
	if len(tm.Methods) != 1 || tm.Methods[0].ClrName != "Frob" {
		t.Errorf("expected one Frob method, got %+v", tm.Methods)
	}
}

func TestBuildNamespaceBindingsRecordsExposures(t *testing.T) {
	plan := buildWidgetPlan(t)
	ns, _ := plan.Graph.Namespace("Widgets.Core")

	bindings := buildNamespaceBindings(ns, plan)
	if len(bindings.Types) != 1 {
		t.Fatalf("expected one type, got %d", len(bindings.Types))
	}
	tb := bindings.Types[0]
	if tb.ClrName != "Widget" || tb.Assembly != "Widgets" {
		t.Errorf("unexpected binding entry: %+v", tb)
	}
	if len(tb.Exposures) != 2 {
		t.Fatalf("expected two exposures, got %d", len(tb.Exposures))
	}
	if len(tb.Definitions.Properties) != 1 || len(tb.Definitions.Methods) != 1 {
		t.Errorf("expected one declared property and one declared method, got %+v", tb.Definitions)
	}
}

func TestRenderDeclarationsProducesClassWithMembers(t *testing.T) {
	plan := buildWidgetPlan(t)
	ns, _ := plan.Graph.Namespace("Widgets.Core")

	out := renderDeclarations(ns, plan)
	if !strings.Contains(out, "export declare class Widget {") {
		t.Errorf("expected a Widget class declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "name: string;") {
		t.Errorf("expected a name property, got:\n%s", out)
	}
	if !strings.Contains(out, "frob(): boolean;") {
		t.Errorf("expected a frob method, got:\n%s", out)
	}
}

func TestFileEmitterWritesOutputLayout(t *testing.T) {
	plan := buildWidgetPlan(t)
	outDir := t.TempDir()

	fe := &FileEmitter{OutDir: outDir}
	if err := fe.Emit(plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nsDir := filepath.Join(outDir, "Widgets", "Core")
	for _, rel := range []string{
		filepath.Join("internal", "index.d.ts"),
		filepath.Join("internal", "metadata.json"),
		"bindings.json",
		"index.mjs",
	} {
		if _, err := os.Stat(filepath.Join(nsDir, rel)); err != nil {
			t.Errorf("expected %s to exist: %v", rel, err)
		}
	}

	content, err := os.ReadFile(filepath.Join(nsDir, "internal", "metadata.json"))
	if err != nil {
		t.Fatalf("reading metadata.json: %v", err)
	}
	var meta namespaceMetadata
	if err := json.Unmarshal(content, &meta); err != nil {
		t.Fatalf("decoding metadata.json: %v", err)
	}
	if meta.Namespace != "Widgets.Core" {
		t.Errorf("expected namespace Widgets.Core, got %q", meta.Namespace)
	}
}

func TestFileEmitterWritesValidationSummaryWhenSinkSet(t *testing.T) {
	plan := buildWidgetPlan(t)
	outDir := t.TempDir()

	sink := diagnostics.NewSink(diagnostics.DefaultConfig())
	sink.Report(diagnostics.Diagnostic{Severity: diagnostics.SeverityWarning, Code: "some-code", Message: "something"})

	fe := &FileEmitter{OutDir: outDir, Sink: sink}
	if err := fe.Emit(plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(outDir, "validation-summary.json"))
	if err != nil {
		t.Fatalf("reading validation-summary.json: %v", err)
	}
	var summary validationSummary
	if err := json.Unmarshal(content, &summary); err != nil {
		t.Fatalf("decoding validation-summary.json: %v", err)
	}
	if summary.Summary.Warnings != 1 {
		t.Errorf("expected 1 warning, got %d", summary.Summary.Warnings)
	}
}

func TestLibraryContractSkipsCoveredNamespace(t *testing.T) {
	plan := buildWidgetPlan(t)
	firstOut := t.TempDir()

	fe := &FileEmitter{OutDir: firstOut}
	if err := fe.Emit(plan); err != nil {
		t.Fatalf("unexpected error on first emit: %v", err)
	}

	contract, err := LoadLibraryContract(firstOut)
	if err != nil {
		t.Fatalf("unexpected error loading contract: %v", err)
	}
	if !contract.coversNamespace("Widgets.Core") {
		t.Fatalf("expected contract to cover Widgets.Core")
	}

	secondOut := t.TempDir()
	fe2 := &FileEmitter{OutDir: secondOut, Contract: contract}
	if err := fe2.Emit(plan); err != nil {
		t.Fatalf("unexpected error on second emit: %v", err)
	}
	if _, err := os.Stat(filepath.Join(secondOut, "Widgets", "Core")); !os.IsNotExist(err) {
		t.Errorf("expected Widgets/Core to be skipped under library mode, err=%v", err)
	}
}
