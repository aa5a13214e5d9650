package emitter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// renderDeclarations prints internal/index.<target-declarations> for
// one namespace: import statements, then every public type's
// structural declaration, in a StableId-independent order (sorted by
// full name) so the output is deterministic regardless of load order.
func renderDeclarations(ns symbol.Namespace, plan *planner.EmissionPlan) string {
	var b strings.Builder
	resolver := plan.Resolver(ns.Name)

	for _, stmt := range plan.Imports[ns.Name] {
		writeImport(&b, stmt)
	}
	if len(plan.Imports[ns.Name]) > 0 {
		b.WriteByte('\n')
	}

	types := publicTypesSorted(ns, plan.Graph)
	for i, t := range types {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeType(&b, t, plan, resolver)
	}

	for i, bucket := range plan.Shape.ExtensionBuckets {
		if bucket.HomeNamespace() != ns.Name {
			continue
		}
		if len(types) > 0 || i > 0 {
			b.WriteByte('\n')
		}
		writeExtensionBucket(&b, bucket, plan, resolver)
	}
	return b.String()
}

// writeExtensionBucket prints a bucket's virtual interface: every
// extension method it collects, minus the leading receiver parameter
// each already spent binding the receiver type (§4.5.8). It is declared
// once, in its HomeNamespace, under the name the naming pass reserved
// for it — the emitter never invents the name itself.
func writeExtensionBucket(b *strings.Builder, bucket shape.ExtensionBucket, plan *planner.EmissionPlan, resolver *planner.TypeNameResolver) {
	name := plan.Renamer.FinalTypeName(bucket.Id())
	if name == "" {
		name = bucket.BucketInterfaceName
	}
	b.WriteString("export interface ")
	b.WriteString(name)
	b.WriteString(" {\n")
	for _, id := range bucket.Methods {
		owner, m, ok := lookupMember(plan.Graph, id)
		if !ok {
			continue
		}
		writeExtensionMethod(b, owner, m, plan, resolver)
	}
	b.WriteString("}\n")
}

// lookupMember resolves a member StableId back to its declaring type and
// the member itself, for rendering contexts (extension buckets) that
// only carry the StableId.
func lookupMember(g *symbol.Graph, id ident.StableId) (symbol.TypeSymbol, symbol.Member, bool) {
	assembly, fullName := declaringTypeOf(id)
	for arity := 0; arity < 8; arity++ {
		owner, ok := g.Type(ident.Type(assembly, fullName, arity))
		if !ok {
			continue
		}
		idx := owner.MemberByStableId(id)
		if idx < 0 {
			continue
		}
		return owner, owner.Members[idx], true
	}
	return symbol.TypeSymbol{}, symbol.Member{}, false
}

func writeExtensionMethod(b *strings.Builder, owner symbol.TypeSymbol, m symbol.Member, plan *planner.EmissionPlan, resolver *planner.TypeNameResolver) {
	name, ok := plan.Renamer.FinalMemberName(m.StableId, memberScope(owner, m))
	if !ok {
		name = m.ClrName
	}
	b.WriteString("  ")
	b.WriteString(name)
	writeMethodGenericParams(b, m.MethodArity)
	b.WriteByte('(')
	if len(m.Parameters) > 1 {
		writeParams(b, m.Parameters[1:], resolver)
	}
	b.WriteString("): ")
	if m.HasReturn {
		b.WriteString(resolver.Resolve(m.ReturnType, false))
	} else {
		b.WriteString("void")
	}
	b.WriteString(";\n")
}

func publicTypesSorted(ns symbol.Namespace, g *symbol.Graph) []symbol.TypeSymbol {
	out := make([]symbol.TypeSymbol, 0, len(ns.Types))
	for _, id := range ns.Types {
		t, ok := g.Type(id)
		if ok && t.Accessibility == symbol.Public {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

func writeImport(b *strings.Builder, stmt planner.ImportStatement) {
	b.WriteString("import * as ")
	b.WriteString(stmt.NamespaceAlias)
	b.WriteString(" from \"../")
	b.WriteString(strings.ReplaceAll(stmt.TargetNamespace, ".", "/"))
	b.WriteString("\";\n")
}

func writeType(b *strings.Builder, t symbol.TypeSymbol, plan *planner.EmissionPlan, resolver *planner.TypeNameResolver) {
	switch t.Kind {
	case symbol.KindEnum:
		writeEnum(b, t, plan.Renamer)
		return
	case symbol.KindDelegate:
		writeDelegate(b, t, plan.Renamer, resolver)
		return
	}

	name := plan.Renamer.FinalTypeName(t.StableId)
	if len(t.ExplicitViews) == 0 {
		writeClassLike(b, t, name, t.Members, plan, resolver)
		return
	}

	// Types with explicit views emit their class surface under the
	// "$instance" name and expose each view as a typed property on the
	// union alias, per the $instance/alias-union convention of §4.6.
	instanceName := plan.Renamer.InstanceTypeName(t.StableId)
	var surface []symbol.Member
	for _, m := range t.Members {
		if m.EmitScope == symbol.ClassSurface {
			surface = append(surface, m)
		}
	}
	writeClassLike(b, t, instanceName, surface, plan, resolver)

	var viewFields []string
	for _, v := range t.ExplicitViews {
		viewIfaceName := name + "_" + v.ViewPropertyName
		writeViewInterface(b, t, v, viewIfaceName, plan, resolver)
		viewFields = append(viewFields, "readonly "+v.ViewPropertyName+": "+viewIfaceName+";")
	}

	b.WriteString("export type ")
	b.WriteString(name)
	b.WriteString(" = ")
	b.WriteString(instanceName)
	if len(viewFields) > 0 {
		b.WriteString(" | { ")
		b.WriteString(strings.Join(viewFields, " "))
		b.WriteString(" }")
	}
	b.WriteString(";\n")
}

func writeClassLike(b *strings.Builder, t symbol.TypeSymbol, name string, members []symbol.Member, plan *planner.EmissionPlan, resolver *planner.TypeNameResolver) {
	keyword := "class"
	if t.Kind == symbol.KindInterface {
		keyword = "interface"
	}
	b.WriteString("export declare ")
	b.WriteString(keyword)
	b.WriteByte(' ')
	b.WriteString(name)
	writeGenericParams(b, t.GenericParameters)

	if t.Base != nil {
		b.WriteString(" extends ")
		b.WriteString(resolver.Resolve(*t.Base, true))
	}
	if len(t.Implements) > 0 {
		word := " implements "
		if t.Kind == symbol.KindInterface {
			word = " extends "
		}
		b.WriteString(word)
		names := make([]string, len(t.Implements))
		for i, impl := range t.Implements {
			names[i] = resolver.Resolve(impl, true)
		}
		b.WriteString(strings.Join(names, ", "))
	}
	b.WriteString(" {\n")

	for _, m := range members {
		if m.EmitScope == symbol.Omitted {
			continue
		}
		writeMember(b, t, m, plan, resolver)
	}

	b.WriteString("}\n")
}

func writeViewInterface(b *strings.Builder, t symbol.TypeSymbol, v symbol.ExplicitView, ifaceName string, plan *planner.EmissionPlan, resolver *planner.TypeNameResolver) {
	b.WriteString("export interface ")
	b.WriteString(ifaceName)
	b.WriteString(" {\n")
	for _, id := range v.ViewMembers {
		idx := t.MemberByStableId(id)
		if idx < 0 {
			continue
		}
		writeMember(b, t, t.Members[idx], plan, resolver)
	}
	b.WriteString("}\n")
}

func memberScope(t symbol.TypeSymbol, m symbol.Member) renamer.Scope {
	side := renamer.SideInstance
	if m.Static {
		side = renamer.SideStatic
	}
	if m.EmitScope == symbol.ViewOnly && m.SourceInterface != nil {
		return renamer.ViewBase(t.StableId, symbol.TypeId(*m.SourceInterface)).WithSide(side)
	}
	return renamer.TypeBase(t.FullName).WithSide(side)
}

func writeMember(b *strings.Builder, t symbol.TypeSymbol, m symbol.Member, plan *planner.EmissionPlan, resolver *planner.TypeNameResolver) {
	r := plan.Renamer
	name, ok := r.FinalMemberName(m.StableId, memberScope(t, m))
	if !ok {
		name = m.ClrName
	}

	b.WriteString("  ")
	if m.Static {
		b.WriteString("static ")
	}

	switch m.Kind {
	case symbol.MemberConstructor:
		b.WriteString("constructor(")
		writeParams(b, m.Parameters, resolver)
		b.WriteString(");\n")
	case symbol.MemberMethod:
		b.WriteString(name)
		writeMethodGenericParams(b, m.MethodArity)
		b.WriteByte('(')
		writeParams(b, m.Parameters, resolver)
		b.WriteString("): ")
		if m.HasReturn {
			b.WriteString(resolver.Resolve(m.ReturnType, false))
		} else {
			b.WriteString("void")
		}
		b.WriteString(";\n")
	case symbol.MemberProperty:
		typeText := resolver.Resolve(m.FieldType, false)
		if plan.Shape.PropertyOverrides != nil {
			if union, ok := plan.Shape.PropertyOverrides.Union(t.StableId, m.StableId); ok {
				typeText = union
			}
		}
		writeAccessors(b, name, typeText, m)
	case symbol.MemberField:
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(resolver.Resolve(m.FieldType, false))
		b.WriteString(";\n")
	case symbol.MemberEvent:
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(resolver.Resolve(m.FieldType, false))
		b.WriteString(" | undefined;\n")
	}
}

func writeAccessors(b *strings.Builder, name, typeText string, m symbol.Member) {
	if m.HasGetter && !m.HasSetter {
		b.WriteString("readonly ")
	}
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(typeText)
	b.WriteString(";\n")
}

func writeParams(b *strings.Builder, params []symbol.Parameter, resolver *planner.TypeNameResolver) {
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Optional {
			b.WriteByte('?')
		}
		b.WriteString(": ")
		typeText := resolver.Resolve(p.Type, false)
		if p.Variadic {
			b.WriteString("...")
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(typeText)
			b.WriteString("[]")
			continue
		}
		b.WriteString(typeText)
	}
}

func writeGenericParams(b *strings.Builder, params []symbol.GenericParameter) {
	if len(params) == 0 {
		return
	}
	b.WriteByte('<')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
	}
	b.WriteByte('>')
}

func writeMethodGenericParams(b *strings.Builder, arity int) {
	if arity == 0 {
		return
	}
	b.WriteByte('<')
	for i := 0; i < arity; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("T")
		if i > 0 {
			b.WriteString(strconv.Itoa(i))
		}
	}
	b.WriteByte('>')
}

func writeEnum(b *strings.Builder, t symbol.TypeSymbol, r *renamer.Renamer) {
	name := r.FinalTypeName(t.StableId)
	b.WriteString("export declare enum ")
	b.WriteString(name)
	b.WriteString(" {\n")
	for _, lit := range t.EnumLiterals {
		b.WriteString("  ")
		b.WriteString(lit.Name)
		b.WriteString(" = ")
		b.WriteString(strconv.FormatInt(lit.Value, 10))
		b.WriteString(",\n")
	}
	b.WriteString("}\n")
}

func writeDelegate(b *strings.Builder, t symbol.TypeSymbol, r *renamer.Renamer, resolver *planner.TypeNameResolver) {
	name := r.FinalTypeName(t.StableId)
	b.WriteString("export type ")
	b.WriteString(name)
	b.WriteString(" = (")
	writeParams(b, t.DelegateParameters, resolver)
	b.WriteString(") => ")
	if t.DelegateHasReturn {
		b.WriteString(resolver.Resolve(t.DelegateReturn, false))
	} else {
		b.WriteString("void")
	}
	b.WriteString(";\n")
}
