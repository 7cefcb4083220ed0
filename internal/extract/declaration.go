// Package extract pulls function declarations and enum constants out of
// normalized C header text using pattern matching.
package extract

import (
	"regexp"
	"strings"
)

// Declaration is a candidate function prototype taken from collapsed text.
type Declaration struct {
	// Text is the whitespace-normalized declaration, including its ';'
	// terminator when the source had one.
	Text string `yaml:"text" json:"text"`
	// Name is the function identifier, empty when none could be found.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// candidatePattern matches a statement boundary, then a span free of ';', '{'
// and '}' that holds a parenthesized group and ends with ')', then the
// terminator. The leading boundary stands in for start-of-text once the input
// is prefixed with ';'.
var candidatePattern = regexp.MustCompile(`[;}]\s*([^;{}]*\([^;{}]*?\))\s*([;{])`)

var whitespaceRun = regexp.MustCompile(`[ \t\r\n]+`)

// ExtractDeclarations returns every candidate declaration in collapsed text,
// in source order. Each token in strip is removed from the candidate when it
// is followed by a space.
func ExtractDeclarations(collapsed string, strip []string) []Declaration {
	text := ";" + collapsed

	var decls []Declaration
	pos := 0
	for pos < len(text) {
		loc := candidatePattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		span := text[pos+loc[2] : pos+loc[3]]
		terminator := text[pos+loc[4] : pos+loc[5]]
		// The terminator is left in place so it can open the next candidate.
		pos += loc[4]

		decl := strings.TrimSpace(whitespaceRun.ReplaceAllString(span, " "))
		for _, token := range strip {
			decl = strings.ReplaceAll(decl, token+" ", "")
		}
		if terminator == ";" {
			decl += ";"
		}

		decls = append(decls, Declaration{Text: decl, Name: DeclarationName(decl)})
	}
	return decls
}

// DeclarationName returns the identifier that precedes the final top-level
// parameter list of decl, e.g. "lv_obj_create" for
// "lv_obj_t * lv_obj_create(lv_obj_t * parent);". The identifier must follow
// a space or tab; "lv_obj_t *lv_obj_create(...)" and function pointer
// declarators have no name and so bypass the name rules.
func DeclarationName(decl string) string {
	s := strings.TrimRight(decl, " ;")
	if !strings.HasSuffix(s, ")") {
		return ""
	}

	depth := 0
	open := -1
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
		}
		if depth == 0 {
			open = i
			break
		}
	}
	if open <= 0 {
		return ""
	}

	end := open
	for end > 0 && s[end-1] == ' ' {
		end--
	}
	start := end
	for start > 0 && isIdentByte(s[start-1]) {
		start--
	}
	if start == end || start == 0 || isDigit(s[start]) {
		return ""
	}
	if c := s[start-1]; c != ' ' && c != '\t' {
		return ""
	}
	return s[start:end]
}

func isIdentByte(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
