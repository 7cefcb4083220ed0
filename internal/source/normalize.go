// Package source turns raw C header text into a form suitable for lexical
// declaration matching.
//
// The package deliberately avoids a C grammar. Comments are masked with a
// regular expression that also recognizes string and character literals, so
// that comment-like text inside a literal is left alone. Brace blocks are then
// elided by repeated innermost-block replacement (see Collapse). This handles
// the vendor headers it is pointed at; it does not handle braces produced by
// macros or braces inside string literals, and it does not evaluate #if
// branches.
package source

import (
	"regexp"
	"strings"
)

// commentPattern matches a comment or a whole quoted literal. Literals are
// part of the alternation only so that the scan skips over them.
var commentPattern = regexp.MustCompile(`(?ms)//.*?$|/\*.*?\*/|'(?:\\.|[^\\'])*'|"(?:\\.|[^\\"])*"`)

// externCPattern matches an extern "C" wrapper; the capture is the wrapped content.
var externCPattern = regexp.MustCompile(`(?s)extern\s+"C"\s*\{(.*)\}`)

// MaskComments replaces each comment with a single space and keeps string and
// character literals verbatim. Line comments keep their terminating newline.
func MaskComments(text string) string {
	return commentPattern.ReplaceAllStringFunc(text, func(match string) string {
		if strings.HasPrefix(match, "/") {
			return " "
		}
		return match
	})
}

// NormalizeLineEndings converts CRLF and lone CR line endings to LF.
func NormalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// JoinContinuations joins every line ending in a backslash with the line that
// follows it, replacing the break with a single space.
func JoinContinuations(text string) string {
	return strings.ReplaceAll(text, "\\\n", " ")
}

// StripDirectives deletes every preprocessor directive line. Conditional
// directives are not evaluated: code under an untaken #if branch is kept.
func StripDirectives(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// UnwrapExternC replaces an extern "C" { ... } wrapper with its content.
// Only one wrapper per file is expected; the match runs to the last closing brace.
func UnwrapExternC(text string) string {
	return externCPattern.ReplaceAllString(text, "$1")
}

// RemoveBlankLines drops lines made only of spaces and tabs.
func RemoveBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.Trim(line, " \t") == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Normalize runs the full cleaning sequence on raw header text: comment
// masking, line ending conversion, continuation joining, directive removal,
// extern "C" unwrapping and blank line removal, in that order.
func Normalize(raw string) string {
	text := MaskComments(raw)
	text = NormalizeLineEndings(text)
	text = JoinContinuations(text)
	text = StripDirectives(text)
	text = UnwrapExternC(text)
	return RemoveBlankLines(text)
}
