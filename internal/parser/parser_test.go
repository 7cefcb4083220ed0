package parser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestParse(t *testing.T) {
	p := newTestParser(t)

	result, err := p.Parse(context.Background(), []byte("int add(int a, int b);\nstruct s { int x; };\n"))
	require.NoError(t, err)
	defer result.Close()

	assert.False(t, result.HasErrors())
	assert.Len(t, result.FindNodesByType("declaration"), 1)
	assert.Len(t, result.FindNodesByType("struct_specifier"), 1)
}

func TestCheckDeclaration(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		name     string
		decl     string
		wantName string
		wantOK   bool
	}{
		{"plain", "void lv_obj_del(lv_obj_t * obj);", "lv_obj_del", true},
		{"pointer return", "lv_obj_t * lv_obj_create(lv_obj_t * parent);", "lv_obj_create", true},
		{"static inline", "static inline int lv_a_get(const lv_a_t * a);", "lv_a_get", true},
		{"callback parameter", "void lv_obj_add_event_cb(lv_obj_t * obj, void (*cb)(lv_event_t * e), void * user_data);", "lv_obj_add_event_cb", true},
		{"variable", "int lv_count;", "", false},
		{"two declarations", "void a(void); void b(void);", "a", false},
		{"garbage", "void lv_x(int a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.CheckDeclaration(context.Background(), tt.decl)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, got.OK(), "problem: %s", got.Problem)
			if tt.wantName != "" {
				assert.Equal(t, tt.wantName, got.Name)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Message: "boom", File: "a.h", Line: 3, Column: 7}
	assert.Equal(t, "a.h:3:7: boom", err.Error())

	err = &ParseError{Message: "boom", Line: 1, Column: 2}
	assert.Equal(t, "1:2: boom", err.Error())
}
