// Package renamer is the single process-wide naming authority (C3):
// it assigns final target-language identifiers per scope and records
// provenance, matching §4.2. The single-authority-over-a-shared-context
// shape is grounded on the teacher's resolverContext, which is the sole
// piece of mutable state threaded through every resolution phase; here
// the Renamer plays that role specifically for naming decisions.
package renamer

import (
	"strconv"
	"strings"

	"github.com/dtsforge/dtsforge/internal/ident"
)

// Side distinguishes the instance and static sides of a type or view
// surface scope.
type Side int

const (
	SideNone Side = iota
	SideInstance
	SideStatic
)

func (s Side) suffix() string {
	switch s {
	case SideInstance:
		return "#instance"
	case SideStatic:
		return "#static"
	default:
		return ""
	}
}

// Scope is one of the scope string families in §4.2. Construct with the
// helpers below rather than formatting ad hoc, so "reservations use base
// scopes; lookups use surface scopes" (§4.2) cannot be violated by a
// typo.
type Scope string

// NamespacePublic is the scope for a namespace's exported top-level
// symbols.
func NamespacePublic(namespace string) Scope { return Scope("ns:" + namespace + ":public") }

// NamespaceInternal is the scope for a namespace's hidden top-level
// symbols.
func NamespaceInternal(namespace string) Scope { return Scope("ns:" + namespace + ":internal") }

// TypeBase is the reservation scope for a type's class surface members,
// before the instance/static side suffix is appended.
func TypeBase(typeFullName string) Scope { return Scope("type:" + typeFullName) }

// TypeSurface is the lookup scope for one side of a type's class
// surface.
func TypeSurface(typeFullName string, side Side) Scope {
	return Scope("type:" + typeFullName + side.suffix())
}

// ViewBase is the reservation scope for an explicit interface view's
// members, before the side suffix.
func ViewBase(typeId, interfaceId ident.StableId) Scope {
	return Scope("view:" + string(typeId) + ":" + string(interfaceId))
}

// ViewSurface is the lookup scope for one side of an explicit interface
// view.
func ViewSurface(typeId, interfaceId ident.StableId, side Side) Scope {
	return Scope("view:" + string(typeId) + ":" + string(interfaceId) + side.suffix())
}

// IsBase reports whether s is a reservation (base) scope, i.e. carries
// no #instance/#static suffix.
func (s Scope) IsBase() bool {
	return !strings.HasSuffix(string(s), "#instance") && !strings.HasSuffix(string(s), "#static")
}

// WithSide returns the surface scope derived from a base scope by
// appending side's suffix. Calling WithSide on an already-suffixed scope
// is a caller error (the Renamer reports CodeScopeMismatch when a
// reservation is given such a scope).
func (s Scope) WithSide(side Side) Scope {
	return Scope(string(s) + side.suffix())
}

// sanitizeArity rewrites a preferred name ending in a backtick-arity
// marker (`N`, matching ident.Type's StableId suffix convention) into
// the target language's "<Name>_<arity>" form (§4.2).
func sanitizeArity(preferred string) string {
	idx := strings.IndexByte(preferred, '`')
	if idx < 0 {
		return preferred
	}
	arity := preferred[idx+1:]
	if _, err := strconv.Atoi(arity); err != nil {
		return preferred
	}
	return preferred[:idx] + "_" + arity
}
