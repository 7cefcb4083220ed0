package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// newCParser creates a tree-sitter parser configured for C.
func newCParser() (*sitter.Parser, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())
	return parser, nil
}

// DeclarationCheck is the outcome of parsing one generated declaration.
type DeclarationCheck struct {
	// Name is the declared function, empty if none was found.
	Name string
	// Problem explains why the line is not a clean function declaration.
	Problem string
}

// OK reports whether the declaration parsed as a function prototype.
func (d DeclarationCheck) OK() bool {
	return d.Problem == ""
}

// CheckDeclaration parses decl as a standalone C translation unit and
// verifies it declares exactly one function with a plain identifier name.
func (p *Parser) CheckDeclaration(ctx context.Context, decl string) (DeclarationCheck, error) {
	result, err := p.Parse(ctx, []byte(decl))
	if err != nil {
		return DeclarationCheck{}, err
	}
	defer result.Close()

	name := outermostFunctionName(result)
	switch {
	case result.HasErrors():
		return DeclarationCheck{Name: name, Problem: "syntax error"}, nil
	case name == "":
		return DeclarationCheck{Problem: "no function declarator"}, nil
	}

	if n := len(result.FindNodesByType("declaration")); n != 1 {
		return DeclarationCheck{Name: name, Problem: fmt.Sprintf("%d declarations on one line", n)}, nil
	}
	return DeclarationCheck{Name: name}, nil
}

// outermostFunctionName returns the identifier of the first function
// declarator met depth first, which is the declared function rather than a
// function pointer parameter.
func outermostFunctionName(result *ParseResult) string {
	fns := result.FindNodesByType("function_declarator")
	if len(fns) == 0 {
		return ""
	}
	decl := fns[0].ChildByFieldName("declarator")
	if decl == nil || decl.Type() != "identifier" {
		return ""
	}
	return result.NodeText(decl)
}
