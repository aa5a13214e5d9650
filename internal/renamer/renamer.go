package renamer

import (
	"strconv"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
)

// reservationKey is the monotonicity key: a (StableId, Scope) pair never
// changes its assigned name once reserved (invariant 7).
type reservationKey struct {
	id    ident.StableId
	scope Scope
}

// Renamer is the single process-wide naming authority. It is not
// goroutine-safe; per §5, the core's canonical execution is serial and
// the renamer's reservation maps are its only mutable state.
type Renamer struct {
	strategy ReservedWordStrategy
	sink     *diagnostics.Sink

	used   map[Scope]map[string]bool
	byKey  map[reservationKey]string
	byId   map[ident.StableId]string // type-only: id -> final type name (alias form)
}

// New creates a Renamer. A nil strategy defaults to
// UnderscorePrefixStrategy.
func New(sink *diagnostics.Sink, strategy ReservedWordStrategy) *Renamer {
	if strategy == nil {
		strategy = UnderscorePrefixStrategy
	}
	return &Renamer{
		strategy: strategy,
		sink:     sink,
		used:     make(map[Scope]map[string]bool),
		byKey:    make(map[reservationKey]string),
		byId:     make(map[ident.StableId]string),
	}
}

func (r *Renamer) usedSet(scope Scope) map[string]bool {
	s, ok := r.used[scope]
	if !ok {
		s = make(map[string]bool)
		r.used[scope] = s
	}
	return s
}

// disambiguate returns the first unused name derived from preferred in
// scope: the exact preferred name if free, otherwise preferred with a
// numeric suffix starting at _1 (§4.2).
func (r *Renamer) disambiguate(scope Scope, preferred string) string {
	used := r.usedSet(scope)
	if !used[preferred] {
		return preferred
	}
	for n := 1; ; n++ {
		candidate := preferred + "_" + strconv.Itoa(n)
		if !used[candidate] {
			return candidate
		}
	}
}

// applyReservedWord runs the configured strategy and records a
// reserved-word diagnostic if it changed anything. Per §4.2 this is
// never a silent mutation.
func (r *Renamer) applyReservedWord(name string) string {
	if !IsReserved(name) {
		return name
	}
	transformed := r.strategy(name)
	if r.sink != nil {
		r.sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityWarning,
			Code:     diagnostics.CodeReservedWord,
			Message:  "identifier \"" + name + "\" collides with a reserved word; renamed to \"" + transformed + "\"",
		})
	}
	return transformed
}

// reserve is the shared implementation of ReserveType/ReserveMember. It
// requires base.IsBase(): reservations use base scopes, and the side
// suffix (if any) is appended here before the used-set check so the two
// sides of one type never collide with each other by accident while
// still sharing the disambiguation counter namespace per side.
func (r *Renamer) reserve(id ident.StableId, preferred string, base Scope, side Side) string {
	if !base.IsBase() && r.sink != nil {
		r.sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Code:     diagnostics.CodeScopeMismatch,
			Message:  "reservation attempted against a surface scope " + string(base) + "; reservations must use base scopes",
		})
	}
	scope := base.WithSide(side)
	key := reservationKey{id: id, scope: scope}
	if existing, ok := r.byKey[key]; ok {
		return existing // monotonic: never reassign (invariant 7)
	}
	preferred = sanitizeArity(preferred)
	preferred = r.applyReservedWord(preferred)
	final := r.disambiguate(scope, preferred)
	r.usedSet(scope)[final] = true
	r.byKey[key] = final
	return final
}

// ReserveType assigns the first unused target-safe identifier derived
// from preferred for id in scope. provenance is accepted but not
// stored: the Renamer keeps no provenance record, and PhaseGate does not
// see it.
func (r *Renamer) ReserveType(id ident.StableId, preferred string, scope Scope, provenance string) string {
	final := r.reserve(id, preferred, scope, SideNone)
	r.byId[id] = final
	return final
}

// ReserveMember assigns the first unused target-safe identifier for a
// member id within baseScope, which must be a base (non-suffixed)
// scope; isStatic selects which side's disambiguation bucket is used.
func (r *Renamer) ReserveMember(id ident.StableId, preferred string, baseScope Scope, reason string, isStatic bool) string {
	side := SideInstance
	if isStatic {
		side = SideStatic
	}
	return r.reserve(id, preferred, baseScope, side)
}

// FinalTypeName is a pure lookup: the alias-form name previously
// assigned via ReserveType, or "" if none was reserved.
func (r *Renamer) FinalTypeName(id ident.StableId) string {
	return r.byId[id]
}

// InstanceTypeName returns the "$instance" form of a type's final name,
// the declarable concrete entity name underlying the alias union
// (§4.6): "type Foo = Foo$instance | __Foo$views".
func (r *Renamer) InstanceTypeName(id ident.StableId) string {
	name := r.FinalTypeName(id)
	if name == "" {
		return ""
	}
	return name + "$instance"
}

// FinalMemberName is a pure lookup against a surface (suffixed) scope.
// A lookup against a base scope finds nothing and returns ok == false;
// PhaseGate does not check lookups against reservations.
func (r *Renamer) FinalMemberName(id ident.StableId, surfaceScope Scope) (string, bool) {
	name, ok := r.byKey[reservationKey{id: id, scope: surfaceScope}]
	return name, ok
}

// AllReservations returns every (StableId, Scope) -> final-name mapping,
// used by PhaseGate's name-uniqueness check.
func (r *Renamer) AllReservations() map[ident.StableId]map[Scope]string {
	out := make(map[ident.StableId]map[Scope]string)
	for key, name := range r.byKey {
		m, ok := out[key.id]
		if !ok {
			m = make(map[Scope]string)
			out[key.id] = m
		}
		m[key.scope] = name
	}
	return out
}

// UsedNamesInScope returns every final name reserved in scope, in no
// particular order.
func (r *Renamer) UsedNamesInScope(scope Scope) []string {
	used := r.used[scope]
	out := make([]string, 0, len(used))
	for name := range used {
		out = append(out, name)
	}
	return out
}
