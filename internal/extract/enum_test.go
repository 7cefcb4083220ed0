package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEnums(t *testing.T) {
	tests := []struct {
		name       string
		normalized string
		want       []string
	}{
		{
			name:       "values stripped",
			normalized: "enum { LV_FOO = 1, LV_BAR, _LV_BAZ };",
			want:       []string{"LV_FOO", "LV_BAR", "_LV_BAZ"},
		},
		{
			name:       "trailing comma",
			normalized: "enum {\n    LV_ALIGN_DEFAULT = 0,\n    LV_ALIGN_TOP_LEFT,\n};",
			want:       []string{"LV_ALIGN_DEFAULT", "LV_ALIGN_TOP_LEFT"},
		},
		{
			name:       "expression values",
			normalized: "enum {\n    LV_STATE_CHECKED = 0x0001 << 0,\n    LV_STATE_ANY = (LV_STATE_CHECKED | 0xFF),\n};",
			want:       []string{"LV_STATE_CHECKED", "LV_STATE_ANY"},
		},
		{
			name:       "macro wrapped members",
			normalized: "enum {\n    LV_STYLE_PROP_INIT(LV_STYLE_SIZE, 0x0, LV_STYLE_ID_VALUE + 3, LV_STYLE_ATTR_NONE),\n    LV_STYLE_PROP_INIT(LV_STYLE_RADIUS, 0x0, LV_STYLE_ID_VALUE + 1, LV_STYLE_ATTR_NONE),\n};",
			want:       []string{"LV_STYLE_SIZE", "LV_STYLE_RADIUS"},
		},
		{
			name:       "several blocks in order",
			normalized: "enum { A, B };\ntypedef uint8_t a_t;\nenum\n{ C };",
			want:       []string{"A", "B", "C"},
		},
		{
			name:       "enum without space before brace is not matched",
			normalized: "enum{ LV_TIGHT_A, LV_TIGHT_B };",
			want:       nil,
		},
		{
			name:       "named enum is not matched",
			normalized: "enum lv_named_t { LV_NAMED_A };",
			want:       nil,
		},
		{
			name:       "no enum",
			normalized: "int lv_foo(void);",
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEnums(tt.normalized))
		})
	}
}
