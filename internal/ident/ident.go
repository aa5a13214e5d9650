// Package ident defines the stable identifiers used across the symbol
// graph and every rewrite pass, planner, and the phase gate.
//
// A StableId is a canonical, deterministic string derived exclusively
// from information intrinsic to the source declaration. StableIds are
// the only identity keys used across passes; object identity is never
// relied upon.
package ident

import "strings"

// StableId canonically identifies a namespace, type, or member.
// Equal inputs always produce a bit-equal StableId.
type StableId string

// Namespace returns the StableId for a namespace. An empty name denotes
// the root (global) namespace.
func Namespace(dotted string) StableId {
	return StableId("ns:" + dotted)
}

// Type returns the StableId for a type: assembly-qualified full name
// plus a generic-arity suffix (omitted for non-generic types).
func Type(assembly, fullName string, arity int) StableId {
	var b strings.Builder
	b.WriteString(assembly)
	b.WriteByte(':')
	b.WriteString(fullName)
	if arity > 0 {
		b.WriteByte('`')
		writeInt(&b, arity)
	}
	return StableId(b.String())
}

// Member returns the StableId for a member: assembly, declaring type,
// member name, and a canonical signature already encoded by the caller
// (see symbol.CanonicalSignature).
func Member(assembly, declaringTypeFullName, name, canonicalSignature string) StableId {
	var b strings.Builder
	b.WriteString(assembly)
	b.WriteByte(':')
	b.WriteString(declaringTypeFullName)
	b.WriteString("::")
	b.WriteString(name)
	b.WriteString(canonicalSignature)
	return StableId(b.String())
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[i:])
}

// String returns the raw identifier text.
func (id StableId) String() string { return string(id) }

// Empty reports whether the identifier is the zero value.
func (id StableId) Empty() bool { return id == "" }
