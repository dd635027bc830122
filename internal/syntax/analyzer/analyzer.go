// Package analyzer implements the semantic analysis pass for the contract
// language and the full analysis pipeline entrypoint used by the test
// harness.
package analyzer

import (
	"fmt"

	"go.followtheprocess.codes/syntest/internal/syntax"
	"go.followtheprocess.codes/syntest/internal/syntax/ast"
	"go.followtheprocess.codes/syntest/internal/syntax/parser"
)

// Analyze runs the full analysis pipeline (scan, parse, semantic checks) over
// source, returning every diagnostic produced, in pipeline order.
//
// The [syntax.Preamble] is prepended to source before scanning so that the
// pipeline always sees a version pragma, which means every diagnostic offset
// is relative to the preamble-prefixed text, not to source itself.
//
// A non-nil error means the pipeline aborted on structurally broken input and
// the diagnostic list is partial, analysis continues through recoverable
// errors and in that case the error is nil.
func Analyze(source string) ([]syntax.Diagnostic, error) {
	var diagnostics []syntax.Diagnostic

	handler := func(d syntax.Diagnostic) {
		diagnostics = append(diagnostics, d)
	}

	p := parser.New([]byte(syntax.Preamble+source), handler)

	file, err := p.Parse()
	if err != nil {
		return diagnostics, fmt.Errorf("analysis aborted: %w", err)
	}

	New(handler).Analyze(file)

	return diagnostics, nil
}

// Analyzer is the semantic analyzer, it walks a parsed [ast.File] reporting
// declaration errors, type errors and warnings through its handler.
type Analyzer struct {
	handler syntax.ErrorHandler
}

// New returns a new [Analyzer] reporting to handler.
func New(handler syntax.ErrorHandler) *Analyzer {
	return &Analyzer{handler: handler}
}

// Analyze checks a parsed file, reporting diagnostics in source order.
func (a *Analyzer) Analyze(file ast.File) {
	contracts := make(map[string]bool)

	for _, contract := range file.Contracts {
		if contracts[contract.Name] {
			a.report(syntax.DeclarationError, contract.NameTok.Start, contract.NameTok.End, "Identifier already declared.")
		}

		contracts[contract.Name] = true

		a.checkContract(contract)
	}
}

// checkContract checks the members of a single contract.
func (a *Analyzer) checkContract(contract ast.Contract) {
	members := make(map[string]bool)

	for _, member := range contract.Members {
		if members[member.Name] {
			a.report(syntax.DeclarationError, member.NameTok.Start, member.NameTok.End, "Identifier already declared.")
		}

		members[member.Name] = true

		if member.Init == nil {
			a.report(syntax.Warning, member.NameTok.Start, member.NameTok.End, "Uninitialized state variable.")
			continue
		}

		a.checkInitializer(member)
	}
}

// checkInitializer checks that a member's initializer literal is implicitly
// convertible to the declared type.
func (a *Analyzer) checkInitializer(member ast.Member) {
	literal := member.Init

	if convertible(member.Type, *literal) {
		return
	}

	msg := fmt.Sprintf(
		"Type %s is not implicitly convertible to expected type %s.",
		literalTypeName(*literal),
		member.Type,
	)

	a.report(syntax.TypeError, literal.Tok.Start, literal.Tok.End, msg)
}

// report passes a diagnostic to the installed handler, if there is one.
func (a *Analyzer) report(kind syntax.Type, start, end int, msg string) {
	if a.handler == nil {
		return
	}

	a.handler(syntax.Diagnostic{
		Type:    kind,
		Start:   start,
		End:     end,
		Comment: msg,
	})
}

// convertible reports whether a literal is implicitly convertible to the
// declared type name.
func convertible(declared string, literal ast.Literal) bool {
	switch declared {
	case "uint", "int":
		return literal.Kind == ast.LiteralInt
	case "bool":
		return literal.Kind == ast.LiteralBool
	case "string":
		return literal.Kind == ast.LiteralString
	case "address":
		// Addresses are written as hex integer literals
		return literal.Kind == ast.LiteralInt && len(literal.Text) > 2 &&
			(literal.Text[:2] == "0x" || literal.Text[:2] == "0X")
	default:
		return false
	}
}

// literalTypeName returns the type name of a literal as used in type
// error messages.
func literalTypeName(literal ast.Literal) string {
	switch literal.Kind {
	case ast.LiteralInt:
		return "int_const"
	case ast.LiteralString:
		return "string"
	case ast.LiteralBool:
		return "bool"
	default:
		return "unknown"
	}
}
