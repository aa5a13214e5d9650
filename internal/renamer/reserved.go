package renamer

// reservedWords is the target language's reserved-word set (ambient
// TypeScript declaration context: keywords plus a handful of
// declaration-position words that would shadow ambient globals).
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "as": true, "implements": true,
	"interface": true, "let": true, "package": true, "private": true,
	"protected": true, "public": true, "static": true, "yield": true,
	"any": true, "boolean": true, "number": true, "string": true,
	"symbol": true, "type": true, "undefined": true, "unknown": true,
	"never": true, "namespace": true, "module": true, "declare": true,
	"readonly": true, "is": true, "keyof": true, "infer": true, "bigint": true,
}

// ReservedWordStrategy transforms an identifier that collides with a
// reserved word. The transformation is configurable (§4.2): the default
// strategy prefixes an underscore, matching how such collisions are
// conventionally handled in ambient .d.ts output.
type ReservedWordStrategy func(name string) string

// UnderscorePrefixStrategy is the default ReservedWordStrategy.
func UnderscorePrefixStrategy(name string) string { return "_" + name }

// IsReserved reports whether name collides with a target-language
// reserved word.
func IsReserved(name string) bool { return reservedWords[name] }
