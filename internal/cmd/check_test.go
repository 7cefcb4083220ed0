package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/hargabyte/lvextract/internal/artifact"
	"github.com/hargabyte/lvextract/internal/parser"
)

func newTestParser(t *testing.T) *parser.Parser {
	t.Helper()
	p, err := parser.NewParser()
	if err != nil {
		t.Fatalf("new parser: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestCheckArtifact_CleanArtifact(t *testing.T) {
	p := newTestParser(t)

	content := artifact.FunctionsPreamble +
		"// src/core/lv_obj.h\n" +
		"lv_obj_t * lv_obj_create(lv_obj_t * parent);\n" +
		"void lv_obj_del(lv_obj_t * obj);\n\n"

	report, err := checkArtifact(context.Background(), p, strings.NewReader(content))
	if err != nil {
		t.Fatalf("checkArtifact: %v", err)
	}
	if report.failed() {
		t.Fatalf("expected clean report, got problems=%v duplicates=%v", report.Problems, report.Duplicates)
	}
	// Preamble carries four declarations.
	if report.Declarations != 6 {
		t.Errorf("Declarations = %d, want 6", report.Declarations)
	}
}

func TestCheckArtifact_ReportsProblems(t *testing.T) {
	p := newTestParser(t)

	content := strings.Join([]string{
		"// header",
		"void lv_a(void);",
		"int lv_not_a_function;",
		"void lv_b(void); void lv_c(void);",
		"void lv_a(void);",
		"",
	}, "\n")

	report, err := checkArtifact(context.Background(), p, strings.NewReader(content))
	if err != nil {
		t.Fatalf("checkArtifact: %v", err)
	}

	if report.Declarations != 4 {
		t.Errorf("Declarations = %d, want 4", report.Declarations)
	}
	if len(report.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", report.Problems)
	}
	if report.Problems[0].Line != 3 || report.Problems[0].Problem != "no function declarator" {
		t.Errorf("unexpected first problem: %+v", report.Problems[0])
	}
	if report.Problems[1].Line != 4 {
		t.Errorf("unexpected second problem: %+v", report.Problems[1])
	}
	if got := report.Duplicates["lv_a"]; got != 2 {
		t.Errorf("Duplicates[lv_a] = %d, want 2", got)
	}
}
