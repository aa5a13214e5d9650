package phasegate

import (
	"slices"
	"strconv"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/symbol"
	"github.com/dtsforge/dtsforge/internal/typemap"
)

// Validate runs every representative rule family of §4.7 against plan
// and reports findings through sink. It returns true iff nothing
// Forbidden (under policy) was reported — the caller decides whether
// that also means "abort" via sink.HasFailure(), since severity and
// strict classification are independent axes.
func Validate(plan *planner.EmissionPlan, sink *diagnostics.Sink, policy Policy) bool {
	ok := true
	report := func(d diagnostics.Diagnostic) {
		sink.Report(d)
		if policy.Classify(d.Code) == Forbidden && d.Severity <= diagnostics.SeverityWarning {
			ok = false
		}
	}

	checkNameRules(plan, report)
	checkIntegrityRules(plan, report)
	checkPlanIntegrity(plan, report)
	checkReferenceRules(plan, report)
	checkPublicSurface(plan, report)
	checkGenericArity(plan, report)

	return ok
}

type reportFunc func(diagnostics.Diagnostic)

// checkNameRules: every type in the graph has a non-empty final type
// name (member names are not checked here), and no scope contains a duplicate final name (the renamer's
// own disambiguation should make this unreachable; this check is the
// independent cross-check PhaseGate exists to provide).
func checkNameRules(plan *planner.EmissionPlan, report reportFunc) {
	for _, id := range plan.Graph.TypeIds() {
		name := plan.Renamer.FinalTypeName(id)
		if name == "" {
			report(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Code:     diagnostics.CodeNameEmpty,
				Message:  "type has no reserved final name",
				Type:     string(id),
			})
		}
	}

	reservations := plan.Renamer.AllReservations()
	seenByScope := make(map[string]map[string]int)
	for _, byScope := range reservations {
		for scope, name := range byScope {
			if seenByScope[string(scope)] == nil {
				seenByScope[string(scope)] = make(map[string]int)
			}
			seenByScope[string(scope)][name]++
		}
	}
	scopes := make([]string, 0, len(seenByScope))
	for s := range seenByScope {
		scopes = append(scopes, s)
	}
	slices.Sort(scopes)
	for _, scope := range scopes {
		names := make([]string, 0, len(seenByScope[scope]))
		for n := range seenByScope[scope] {
			names = append(names, n)
		}
		slices.Sort(names)
		for _, n := range names {
			if seenByScope[scope][n] > 1 {
				report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Code:     diagnostics.CodeNameDuplicateInScope,
					Message:  "duplicate final name \"" + n + "\" in scope " + scope,
				})
			}
		}
	}
}

// checkIntegrityRules: every ViewOnly member carries a SourceInterface
// (invariant 2). EmitScope values themselves are not checked.
func checkIntegrityRules(plan *planner.EmissionPlan, report reportFunc) {
	for _, id := range plan.Graph.TypeIds() {
		t, _ := plan.Graph.Type(id)
		for _, m := range t.Members {
			if m.EmitScope == symbol.ViewOnly && m.SourceInterface == nil {
				report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Code:     diagnostics.CodeViewOnlyMissingSource,
					Message:  "view-only member " + m.ClrName + " has no source interface",
					Type:     string(id),
					Member:   string(m.StableId),
				})
			}
		}
	}
}

// checkPlanIntegrity: every StableId referenced by a shape-pass plan
// still exists in the graph, and every suppressed static conflict
// member actually exists on its claimed type with the claimed
// staticness.
func checkPlanIntegrity(plan *planner.EmissionPlan, report reportFunc) {
	if plan.Shape.StaticConflicts != nil {
		for typeId, members := range plan.Shape.StaticConflicts.SuppressedMembersByType {
			t, ok := plan.Graph.Type(typeId)
			if !ok {
				report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Code:     diagnostics.CodePlanDanglingStableId,
					Message:  "static-conflict plan references a type no longer in the graph",
					Type:     string(typeId),
				})
				continue
			}
			for memberId := range members {
				idx := t.MemberByStableId(memberId)
				if idx < 0 {
					report(diagnostics.Diagnostic{
						Severity: diagnostics.SeverityError,
						Code:     diagnostics.CodeSuppressedMemberMissing,
						Message:  "suppressed member not found on its claimed type",
						Type:     string(typeId),
						Member:   string(memberId),
					})
					continue
				}
				if !t.Members[idx].Static {
					report(diagnostics.Diagnostic{
						Severity: diagnostics.SeverityError,
						Code:     diagnostics.CodeSuppressedStaticnessWrong,
						Message:  "suppressed member is not static",
						Type:     string(typeId),
						Member:   string(memberId),
					})
				}
			}
		}
	}

	for _, bucket := range plan.Shape.ExtensionBuckets {
		for _, memberId := range bucket.Methods {
			found := false
			for _, id := range plan.Graph.TypeIds() {
				t, _ := plan.Graph.Type(id)
				if t.MemberByStableId(memberId) >= 0 {
					found = true
					break
				}
			}
			if !found {
				report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Code:     diagnostics.CodeExtensionBucketBadTarget,
					Message:  "extension bucket references a method not present in the graph",
					Member:   string(memberId),
				})
			}
		}
	}
}

// checkReferenceRules: every imported type is actually exported by its
// source namespace.
func checkReferenceRules(plan *planner.EmissionPlan, report reportFunc) {
	namespaces := make([]string, 0, len(plan.Imports))
	for ns := range plan.Imports {
		namespaces = append(namespaces, ns)
	}
	slices.Sort(namespaces)

	for _, ns := range namespaces {
		for _, stmt := range plan.Imports[ns] {
			exported := plan.Exports[stmt.TargetNamespace]
			for _, ti := range stmt.TypeImports {
				if !slices.Contains(exported, ti.Alias) {
					report(diagnostics.Diagnostic{
						Severity:  diagnostics.SeverityError,
						Code:      diagnostics.CodeImportNotExported,
						Message:   "imported type \"" + ti.Alias + "\" is not exported by " + stmt.TargetNamespace,
						Namespace: ns,
					})
				}
			}
		}
	}
}

// checkPublicSurface: a Public type's class-surface members never
// reference a non-Public (Internal) in-graph type in parameter,
// return, or field position.
func checkPublicSurface(plan *planner.EmissionPlan, report reportFunc) {
	for _, id := range plan.Graph.TypeIds() {
		t, _ := plan.Graph.Type(id)
		if t.Accessibility != symbol.Public {
			continue
		}
		for _, m := range t.Members {
			if m.EmitScope != symbol.ClassSurface {
				continue
			}
			for _, p := range m.Parameters {
				checkPublicRef(plan, t, m, p.Type, report)
			}
			if m.HasReturn {
				checkPublicRef(plan, t, m, m.ReturnType, report)
			}
			if m.FieldType != nil {
				checkPublicRef(plan, t, m, m.FieldType, report)
			}
		}
	}
}

func checkPublicRef(plan *planner.EmissionPlan, owner symbol.TypeSymbol, m symbol.Member, ref symbol.TypeReference, report reportFunc) {
	id := symbol.TypeId(ref)
	if id == "" {
		return
	}
	target, ok := plan.Graph.Type(id)
	if !ok || target.Accessibility == symbol.Public {
		return
	}
	report(diagnostics.Diagnostic{
		Severity: diagnostics.SeverityError,
		Code:     diagnostics.CodePublicExposesInternal,
		Message:  "public member " + m.ClrName + " exposes internal type " + target.ClrName,
		Type:     string(owner.StableId),
		Member:   string(m.StableId),
	})
}

// checkGenericArity: every in-graph Named reference's type-argument
// count matches its target's declared generic parameter count
// (§4.3/§4.7 "declared arity matches use-site arity everywhere"), and
// every PrimitiveLift container (Nullable<T> and friends) wraps an
// argument the builtin table actually covers rather than an
// unresolvable foreign reference (§4.3's "no silent erasure to any").
func checkGenericArity(plan *planner.EmissionPlan, report reportFunc) {
	for _, id := range plan.Graph.TypeIds() {
		t, _ := plan.Graph.Type(id)
		for _, m := range t.Members {
			for _, p := range m.Parameters {
				checkArityArg(plan, t, m, p.Type, report)
			}
			if m.HasReturn {
				checkArityArg(plan, t, m, m.ReturnType, report)
			}
			if m.FieldType != nil {
				checkArityArg(plan, t, m, m.FieldType, report)
			}
		}
	}
}

func checkArityArg(plan *planner.EmissionPlan, owner symbol.TypeSymbol, m symbol.Member, ref symbol.TypeReference, report reportFunc) {
	named, ok := ref.(symbol.Named)
	if !ok {
		return
	}

	if target, inGraph := plan.Graph.Type(symbol.TypeId(named)); inGraph {
		if len(named.TypeArgs) != len(target.GenericParameters) {
			report(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityError,
				Code:     diagnostics.CodeArityMismatch,
				Message:  "generic argument count does not match the declared arity of " + target.ClrName,
				Type:     string(owner.StableId),
				Member:   string(m.StableId),
			})
		}
	}

	if !typemap.RequiresLift(arityKey(named.FullName, len(named.TypeArgs))) {
		return
	}
	for _, arg := range named.TypeArgs {
		argNamed, isNamed := arg.(symbol.Named)
		if isNamed && typemap.IsPrimitiveArgument(argNamed) {
			continue
		}
		if isNamed {
			if _, inGraph := plan.Graph.Type(symbol.TypeId(argNamed)); inGraph {
				continue
			}
		}
		report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityWarning,
			Code:     diagnostics.CodePrimitiveArgUncovered,
			Message:  "lifted generic argument is neither a covered primitive nor an in-graph type",
			Type:     string(owner.StableId),
			Member:   string(m.StableId),
		})
	}
}

func arityKey(fullName string, arity int) string {
	if arity == 0 {
		return fullName
	}
	return fullName + "`" + strconv.Itoa(arity)
}
