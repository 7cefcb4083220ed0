package source

import "regexp"

// innermostBlock matches a brace block that contains no opening brace.
var innermostBlock = regexp.MustCompile(`\{[^{]*?\}`)

// Collapse removes every brace-delimited region, at any nesting depth, leaving
// a single ';' in place of each one so statement boundaries stay visible.
func Collapse(text string) string {
	collapsed, _ := CollapseCount(text)
	return collapsed
}

// CollapseCount is Collapse that also reports how many replacement passes
// made at least one substitution.
func CollapseCount(text string) (string, int) {
	passes := 0
	for innermostBlock.MatchString(text) {
		text = innermostBlock.ReplaceAllLiteralString(text, ";")
		passes++
	}
	return text, passes
}
