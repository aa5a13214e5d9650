// Package typemap provides the closed mapping from source-platform
// primitive/core types to target-language built-ins, and the
// PrimitiveLift table governing generic-argument lifting (§4.3).
//
// The table shape is grounded on the teacher's internal/module
// base_modules.go: a closed, name-keyed table plus a single lookup
// function, rather than a general-purpose registry.
package typemap

import "github.com/dtsforge/dtsforge/internal/symbol"

// entry is one row of the builtin table.
type entry struct {
	sourceFullName string
	targetName     string
}

var builtins = []entry{
	{"System.Boolean", "boolean"},
	{"System.Byte", "number"},
	{"System.SByte", "number"},
	{"System.Int16", "number"},
	{"System.UInt16", "number"},
	{"System.Int32", "number"},
	{"System.UInt32", "number"},
	{"System.Int64", "bigint"},
	{"System.UInt64", "bigint"},
	{"System.Single", "number"},
	{"System.Double", "number"},
	{"System.Decimal", "number"},
	{"System.String", "string"},
	{"System.Char", "string"},
	{"System.Object", "unknown"},
	{"System.Void", "void"},
	{"System.DateTime", "Date"},
	{"System.DateTimeOffset", "Date"},
	{"System.TimeSpan", "number"},
	{"System.Guid", "string"},
	{"System.Uri", "string"},
}

var builtinIndex map[string]string

func init() {
	builtinIndex = make(map[string]string, len(builtins))
	for _, e := range builtins {
		builtinIndex[e.sourceFullName] = e.targetName
	}
}

// TryMapBuiltin returns the target-language built-in name for a
// source-platform primitive full name, or ("", false) if fullName is
// not a recognized builtin.
func TryMapBuiltin(fullName string) (string, bool) {
	name, ok := builtinIndex[fullName]
	return name, ok
}

// containerEntry describes a generic container's target-language
// rendering template, with %s substituted for the single rendered type
// argument (all containers covered here are arity-1; arity-N containers
// do not arise in the source platform's core library surface this map
// covers).
type containerEntry struct {
	sourceFullName string
	template       string // e.g. "%s[]", "Promise<%s>"
}

var containers = []containerEntry{
	{"System.Collections.Generic.List`1", "%s[]"},
	{"System.Collections.Generic.IList`1", "%s[]"},
	{"System.Collections.Generic.IEnumerable`1", "Iterable<%s>"},
	{"System.Collections.Generic.ICollection`1", "%s[]"},
	{"System.Threading.Tasks.Task`1", "Promise<%s>"},
	{"System.Nullable`1", "%s | null"},
}

var containerIndex map[string]string

func init() {
	containerIndex = make(map[string]string, len(containers))
	for _, e := range containers {
		containerIndex[e.sourceFullName] = e.template
	}
}

// TryMapContainer returns the rendering template for a generic-arity-1
// container type, keyed by full name with its backtick-arity suffix
// (e.g. "System.Collections.Generic.List`1"), or ("", false).
func TryMapContainer(fullNameWithArity string) (string, bool) {
	tmpl, ok := containerIndex[fullNameWithArity]
	return tmpl, ok
}

// NonGenericTask is System.Threading.Tasks.Task (no type arg):
// maps to Promise<void>.
const NonGenericTask = "System.Threading.Tasks.Task"

// LiftRule names a (containerFullName) pair whose sole generic argument
// must be lifted to primitive form rather than boxed, e.g.
// Nullable<T> on a primitive T renders "T | null" rather than
// "Nullable<T>" — PrimitiveLift in §4.3.
type LiftRule struct {
	ContainerFullName string // with `1 arity suffix
}

var liftRules = map[string]bool{
	"System.Nullable`1": true,
}

// RequiresLift reports whether the named arity-1 container must lift
// its type argument to primitive form.
func RequiresLift(containerFullNameWithArity string) bool {
	return liftRules[containerFullNameWithArity]
}

// IsPrimitiveArgument reports whether ref is a reference to a known
// source-platform primitive, the predicate PhaseGate's generic-arity
// family uses to enforce "every primitive used as a generic argument is
// covered by a rule" (§4.3, §4.7).
func IsPrimitiveArgument(ref symbol.TypeReference) bool {
	named, ok := ref.(symbol.Named)
	if !ok {
		return false
	}
	_, isBuiltin := TryMapBuiltin(named.FullName)
	return isBuiltin
}
