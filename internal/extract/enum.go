package extract

import (
	"regexp"
	"strings"
)

// enumBlock captures the body of an anonymous enum written "enum {". Bodies
// are assumed to hold no nested braces.
var enumBlock = regexp.MustCompile(`(?s)\benum\s+\{(.*?)\}`)

// macroMember reduces a generator macro invocation such as
// "LV_STYLE_PROP_INIT(LV_STYLE_SIZE, 0x0, LV_STYLE_ID_VALUE + 3)," to its
// first argument.
var macroMember = regexp.MustCompile(`\S+\((.*?),.*?\),`)

// ExtractEnums returns the bare member names of every enum block in
// normalized text, in encounter order. Values, whitespace and empty members
// (from trailing commas) are dropped.
func ExtractEnums(normalized string) []string {
	var names []string
	for _, m := range enumBlock.FindAllStringSubmatch(normalized, -1) {
		body := macroMember.ReplaceAllString(m[1], "${1},")
		for _, member := range strings.Split(body, ",") {
			if name := memberName(member); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

// memberName strips all whitespace and any "= value" suffix from an enum member.
func memberName(member string) string {
	name := strings.Join(strings.Fields(member), "")
	if i := strings.IndexByte(name, '='); i >= 0 {
		name = name[:i]
	}
	return name
}
