package enhance

import "strings"

// LaTeX resumes are full of backslashes and control characters that break
// naive JSON embedding and make log lines unreadable. Escape rewrites each
// string leaf exactly once; escaping must happen at the serialization
// boundary, never earlier, or leaves get double-escaped.
var (
	escaper = strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
		"\t", `\t`,
		"\f", `\f`,
		"\b", `\b`,
	)
	unescaper = strings.NewReplacer(
		`\\`, `\`,
		`\"`, `"`,
		`\n`, "\n",
		`\r`, "\r",
		`\t`, "\t",
		`\f`, "\f",
		`\b`, "\b",
	)
)

// Escape rewrites backslashes, quotes, and control characters in s as their
// textual escape sequences.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape inverts Escape exactly.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Sanitize returns a copy of value with every string leaf escaped,
// preserving structure across strings, slices, and maps.
func Sanitize(value any) any {
	switch v := value.(type) {
	case string:
		return Escape(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Sanitize(elem)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, elem := range v {
			out[i] = Escape(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = Sanitize(elem)
		}
		return out
	default:
		return value
	}
}

// Desanitize inverts Sanitize over the same structures.
func Desanitize(value any) any {
	switch v := value.(type) {
	case string:
		return Unescape(v)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = Desanitize(elem)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, elem := range v {
			out[i] = Unescape(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, elem := range v {
			out[k] = Desanitize(elem)
		}
		return out
	default:
		return value
	}
}
