package analyzer

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// GoName converts a schema name to an exported Go identifier. Words split
// on underscores, spaces, dashes and dots; each word gets an upper-case
// first letter and keeps the rest, so acronyms survive:
// Intra_PAN -> IntraPAN, "MAC command" -> MACCommand.
func GoName(name string) string {
	var b strings.Builder
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == ' ' || r == '-' || r == '.'
	})
	for _, w := range words {
		r, n := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[n:])
	}
	return b.String()
}

// LowerGoName converts a schema name to an unexported Go identifier,
// lower-casing a leading acronym: "MAC command" -> macCommand.
func LowerGoName(name string) string {
	r := []rune(GoName(name))
	i := 0
	for i < len(r) && unicode.IsUpper(r[i]) {
		i++
	}
	if i > 1 && i < len(r) && unicode.IsLower(r[i]) {
		i--
	}
	if i == 0 && len(r) > 0 {
		i = 1
	}
	for j := 0; j < i; j++ {
		r[j] = unicode.ToLower(r[j])
	}
	return string(r)
}

func validIdent(s string) bool {
	return token.IsIdentifier(s) && !token.IsKeyword(s)
}
