package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollapse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       string
		wantPasses int
	}{
		{"no braces", "int a(void);", "int a(void);", 0},
		{"empty body", "void f(void) {}", "void f(void) ;", 1},
		{"flat struct", "typedef struct { int x; } s_t;", "typedef struct ; s_t;", 1},
		{"triple nested", "x { { { } } };", "x ;;", 3},
		{"siblings collapse in one pass", "a {b} c {d}", "a ; c ;", 1},
		{
			"inline function body",
			"static inline int f(int a) {\n    if(a) { return 1; }\n    return 0;\n}\nint g(void);",
			"static inline int f(int a) ;\nint g(void);",
			2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, passes := CollapseCount(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPasses, passes)
		})
	}
}

func TestCollapse_LeavesNoBraces(t *testing.T) {
	got := Collapse("{ { { } } };")

	assert.False(t, strings.ContainsAny(got, "{}"), "got %q", got)
	assert.Equal(t, ";;", got)
}

func TestCollapse_TerminatorsNonDecreasing(t *testing.T) {
	text := "struct a { union { struct { int x; } s; } u; }; int f(void);"
	prev := topLevelTerminators(text)

	for innermostBlock.MatchString(text) {
		text = innermostBlock.ReplaceAllLiteralString(text, ";")
		n := topLevelTerminators(text)
		assert.GreaterOrEqual(t, n, prev)
		prev = n
	}
	assert.Equal(t, "struct a ;; int f(void);", text)
}

func topLevelTerminators(text string) int {
	depth, n := 0, 0
	for _, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				n++
			}
		}
	}
	return n
}
