package symbol

import "strings"

// CanonicalSignature deterministically encodes a member's kind, parameter
// types, return type, generic arity, by-ref/array/pointer modifiers, and
// static-ness, per §3.1. The member's name is not part of the string:
// two members are duplicates (for InterfaceInliner dedup) iff they share
// a name and their CanonicalSignature strings are equal.
func CanonicalSignature(kind MemberKind, static bool, methodArity int, params []Parameter, ret TypeReference, hasReturn bool) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(kind.String())
	if static {
		b.WriteString(",static")
	}
	if methodArity > 0 {
		b.WriteString(",arity=")
		writeInt(&b, methodArity)
	}
	b.WriteString(")(")
	for i, p := range params {
		if i > 0 {
			b.WriteByte(',')
		}
		if p.ByRef {
			b.WriteString("ref ")
		}
		writeTypeRef(&b, p.Type)
		if p.Variadic {
			b.WriteString("...")
		}
	}
	b.WriteByte(')')
	if hasReturn {
		b.WriteString("->")
		writeTypeRef(&b, ret)
	}
	return b.String()
}

func writeTypeRef(b *strings.Builder, ref TypeReference) {
	switch t := ref.(type) {
	case nil:
		b.WriteString("void")
	case Named:
		b.WriteString(t.Assembly)
		b.WriteByte(':')
		b.WriteString(t.FullName)
		if len(t.TypeArgs) > 0 {
			b.WriteByte('<')
			for i, a := range t.TypeArgs {
				if i > 0 {
					b.WriteByte(',')
				}
				writeTypeRef(b, a)
			}
			b.WriteByte('>')
		}
	case Nested:
		writeTypeRef(b, t.Outer)
		b.WriteByte('+')
		b.WriteString(t.NestedName)
		if len(t.TypeArgs) > 0 {
			b.WriteByte('<')
			for i, a := range t.TypeArgs {
				if i > 0 {
					b.WriteByte(',')
				}
				writeTypeRef(b, a)
			}
			b.WriteByte('>')
		}
	case GenericParam:
		if t.Owner == OwnerMethod {
			b.WriteString("!!")
		} else {
			b.WriteString("!")
		}
		writeIntV(b, t.Position)
	case Array:
		writeTypeRef(b, t.Element)
		for i := 0; i < t.Rank; i++ {
			b.WriteString("[]")
		}
	case Pointer:
		writeTypeRef(b, t.Pointee)
		b.WriteByte('*')
	case ByRef:
		b.WriteByte('&')
		writeTypeRef(b, t.Referent)
	case Placeholder:
		b.WriteString("?")
		b.WriteString(t.Label)
	default:
		b.WriteString("?unknown")
	}
}

func writeIntV(b *strings.Builder, n int) {
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

func writeInt(b *strings.Builder, n int) { writeIntV(b, n) }
