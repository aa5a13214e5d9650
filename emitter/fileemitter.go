package emitter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// FileEmitter is the C8 reference implementation: it writes the §6
// output layout to an output directory, one sub-directory per
// namespace plus _root for the global namespace.
type FileEmitter struct {
	// OutDir is the output root.
	OutDir string

	// Sink, if set, receives PhaseGate's diagnostics so the validation
	// summary written alongside emission reflects the same run (§7: "a
	// diagnostic-file and a summary-JSON are written even when emission
	// is aborted").
	Sink *diagnostics.Sink

	// Contract, if set, restricts emission to the library-mode subset
	// not already present in a prior run's output (§6).
	Contract *LibraryContract

	// Include, if non-empty, restricts emission to these namespace
	// names (the CLI's repeatable --namespace flag). Empty means emit
	// every namespace in the graph.
	Include []string
}

// Emit implements Emitter.
func (e *FileEmitter) Emit(plan *planner.EmissionPlan) error {
	if e.OutDir == "" {
		return fmt.Errorf("emitter: OutDir is required")
	}

	if e.Sink != nil {
		if err := e.writeValidationSummary(); err != nil {
			return err
		}
	}

	var included map[string]bool
	if len(e.Include) > 0 {
		included = make(map[string]bool, len(e.Include))
		for _, ns := range e.Include {
			included[ns] = true
		}
	}

	for _, ns := range plan.Graph.Namespaces() {
		if included != nil && !included[ns.Name] {
			continue
		}
		if e.Contract != nil && e.Contract.coversNamespace(ns.Name) {
			continue
		}
		if err := e.emitNamespace(ns, plan); err != nil {
			return fmt.Errorf("emitter: namespace %q: %w", ns.Name, err)
		}
	}
	return nil
}

func (e *FileEmitter) namespaceDir(ns symbol.Namespace) string {
	if ns.IsRoot() {
		return filepath.Join(e.OutDir, "_root")
	}
	return filepath.Join(e.OutDir, filepath.FromSlash(strings.ReplaceAll(ns.Name, ".", "/")))
}

func (e *FileEmitter) emitNamespace(ns symbol.Namespace, plan *planner.EmissionPlan) error {
	dir := e.namespaceDir(ns)
	internalDir := filepath.Join(dir, "internal")
	if err := os.MkdirAll(internalDir, 0o755); err != nil {
		return err
	}

	decl := renderDeclarations(ns, plan)
	if err := os.WriteFile(filepath.Join(internalDir, "index.d.ts"), []byte(decl), 0o644); err != nil {
		return err
	}

	meta := buildNamespaceMetadata(ns, plan)
	if err := writeJSON(filepath.Join(internalDir, "metadata.json"), meta); err != nil {
		return err
	}

	bindings := buildNamespaceBindings(ns, plan)
	if e.Contract != nil {
		if err := e.Contract.ValidateDanglingCoverage(bindings); err != nil {
			return err
		}
		var err error
		bindings, err = e.Contract.validateConsistency(ns.Name, bindings)
		if err != nil {
			return err
		}
	}
	if err := writeJSON(filepath.Join(dir, "bindings.json"), bindings); err != nil {
		return err
	}

	stub := renderModuleStub(ns)
	if err := os.WriteFile(filepath.Join(dir, "index.mjs"), []byte(stub), 0o644); err != nil {
		return err
	}

	return nil
}

func (e *FileEmitter) writeValidationSummary() error {
	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return err
	}
	summary := buildValidationSummary(e.Sink)
	if err := writeJSON(filepath.Join(e.OutDir, "validation-summary.json"), summary); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(e.OutDir, "diagnostics.txt"), []byte(e.Sink.Summary()), 0o644); err != nil {
		return err
	}
	return nil
}

func writeJSON(path string, v any) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	content = append(content, '\n')
	return os.WriteFile(path, content, 0o644)
}
