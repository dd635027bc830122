// Package parser implements the contract language parser.
//
// The parser is recursive descent over a two token window (current/next) fed
// by the channel based scanner. Recoverable syntax errors are reported to the
// installed [syntax.ErrorHandler] as ParserError diagnostics and parsing
// continues after synchronising, so a single pass collects every error in the
// file. Only an unexpected end of file aborts the parse, reported via
// [ErrFatal].
package parser

import (
	"errors"
	"fmt"
	"strings"

	"go.followtheprocess.codes/syntest/internal/syntax"
	"go.followtheprocess.codes/syntest/internal/syntax/ast"
	"go.followtheprocess.codes/syntest/internal/syntax/scanner"
	"go.followtheprocess.codes/syntest/internal/syntax/token"
)

// ErrParse is a generic parsing error, details on the error are passed
// to the parser's [syntax.ErrorHandler] at the moment it occurs.
var ErrParse = errors.New("parse error")

// ErrFatal is returned when the input is so broken the parser cannot
// continue, the canonical case being an unexpected end of file. Callers
// should treat the parse, and the whole analysis, as aborted.
var ErrFatal = errors.New("fatal parse error")

// Parser is the contract source parser.
type Parser struct {
	handler syntax.ErrorHandler // The installed error handler, called with each diagnostic
	scanner *scanner.Scanner    // Scanner to produce tokens
	src     []byte              // Raw source text
	current token.Token         // Current token under inspection
	next    token.Token         // Next token in the stream
}

// New initialises and returns a new [Parser] reading from src.
func New(src []byte, handler syntax.ErrorHandler) *Parser {
	p := &Parser{
		handler: handler,
		scanner: scanner.New(src),
		src:     src,
	}

	// Read 2 tokens so current and next are set
	p.advance()
	p.advance()

	return p
}

// Parse parses the file to completion, returning an [ast.File].
//
// Recoverable syntax errors are reported through the installed handler and do
// not produce a non-nil return, the returned error is non-nil only when the
// parse was aborted and is then [ErrFatal].
func (p *Parser) Parse() (ast.File, error) {
	var file ast.File

	for !p.current.Is(token.EOF) {
		switch p.current.Kind {
		case token.Pragma:
			pragma, err := p.parsePragma()
			if err != nil {
				if errors.Is(err, ErrFatal) {
					return file, err
				}

				p.synchronise()

				continue
			}

			file.Pragmas = append(file.Pragmas, pragma)
		case token.Contract:
			contract, err := p.parseContract()
			if err != nil {
				if errors.Is(err, ErrFatal) {
					return file, err
				}

				p.synchronise()

				continue
			}

			file.Contracts = append(file.Contracts, contract)
		default:
			p.errorf(p.current, "expected contract definition, got %s", p.current.Kind)
			p.synchronise()
		}
	}

	return file, nil
}

// advance advances the parser by a single token.
//
// Comment tokens are skipped transparently. Error tokens are also skipped,
// forwarding the scanner's diagnostic for each to the handler at the moment
// the token enters the window, which keeps scan errors in token order
// relative to parse errors.
func (p *Parser) advance() {
	p.current = p.next

	for {
		p.next = p.scanner.Scan()

		if p.next.Is(token.Comment) {
			continue
		}

		if p.next.Is(token.Error) {
			if diag, ok := p.scanner.TakeDiagnostic(); ok {
				p.report(diag)
			}

			continue
		}

		break
	}
}

// expect asserts that the next token is one of the given kinds, emitting a
// syntax error if not.
//
// The parser is advanced only if the next token is of one of these kinds such
// that after returning, p.current will be one of the kinds.
//
// An unexpected end of file is fatal and returns [ErrFatal], any other
// violation returns [ErrParse].
func (p *Parser) expect(kinds ...token.Kind) error {
	if p.next.Is(token.EOF) {
		return p.fatalf(p.next, "unexpected end of file, expected %s", kindsString(kinds))
	}

	if !p.next.Is(kinds...) {
		p.errorf(p.next, "expected %s, got %s", kindsString(kinds), p.next.Kind)
		return ErrParse
	}

	p.advance()

	return nil
}

// report passes a diagnostic to the installed handler, if there is one.
func (p *Parser) report(diag syntax.Diagnostic) {
	if p.handler != nil {
		p.handler(diag)
	}
}

// errorf reports a ParserError diagnostic spanning the given token.
func (p *Parser) errorf(tok token.Token, format string, a ...any) {
	p.report(syntax.Diagnostic{
		Type:    syntax.ParserError,
		Start:   tok.Start,
		End:     tok.End,
		Comment: fmt.Sprintf(format, a...),
	})
}

// fatalf reports a ParserError diagnostic like errorf, then returns [ErrFatal]
// to signal that the parse cannot continue.
func (p *Parser) fatalf(tok token.Token, format string, a ...any) error {
	p.errorf(tok, format, a...)
	return ErrFatal
}

// text returns the chunk of source text described by the p.current token.
func (p *Parser) text() string {
	return string(p.src[p.current.Start:p.current.End])
}

// synchronise is called during error recovery, after a parse error we are
// unsure of the local state as the syntax is invalid.
//
// synchronise discards tokens up to and including the next ';' or '}', or
// until the next contract declaration or EOF, after which point the parser
// should be back in sync and can continue normally.
func (p *Parser) synchronise() {
	for {
		p.advance()

		switch {
		case p.current.Is(token.EOF, token.Contract):
			return
		case p.current.Is(token.Semicolon, token.RightBrace):
			p.advance()
			return
		}
	}
}

// parsePragma parses a pragma directive.
//
// It is called with p.current on the pragma keyword and returns with
// p.current on the token after the terminating ';'.
func (p *Parser) parsePragma() (ast.Pragma, error) {
	if err := p.expect(token.Ident); err != nil {
		return ast.Pragma{}, err
	}

	pragma := ast.Pragma{
		Name:    p.text(),
		NameTok: p.current,
	}

	if pragma.Name != "contract" {
		p.errorf(p.current, "unknown pragma %q", pragma.Name)
	}

	if err := p.expect(token.Text); err != nil {
		return ast.Pragma{}, err
	}

	pragma.Constraint = strings.TrimSpace(p.text())

	if err := p.expect(token.Semicolon); err != nil {
		return ast.Pragma{}, err
	}

	p.advance()

	return pragma, nil
}

// parseContract parses a contract declaration.
//
// It is called with p.current on the contract keyword and returns with
// p.current on the token after the closing '}'.
func (p *Parser) parseContract() (ast.Contract, error) {
	if err := p.expect(token.Ident); err != nil {
		return ast.Contract{}, err
	}

	contract := ast.Contract{
		Name:    p.text(),
		NameTok: p.current,
	}

	if err := p.expect(token.LeftBrace); err != nil {
		return ast.Contract{}, err
	}

	p.advance() // Into the contract body

	for !p.current.Is(token.RightBrace) {
		if p.current.Is(token.EOF) {
			return contract, p.fatalf(p.current, "unexpected end of file, expected RightBrace")
		}

		member, err := p.parseMember()
		if err != nil {
			if errors.Is(err, ErrFatal) {
				return contract, err
			}

			p.synchroniseMember()

			continue
		}

		contract.Members = append(contract.Members, member)
	}

	p.advance() // Past the closing brace

	return contract, nil
}

// parseMember parses a single state variable declaration.
//
// It is called with p.current on the first token of the declaration and
// returns with p.current on the token after the terminating ';'.
func (p *Parser) parseMember() (ast.Member, error) {
	if !p.current.Is(token.TypeName) {
		p.errorf(p.current, "expected type name, got %s", p.current.Kind)
		return ast.Member{}, ErrParse
	}

	member := ast.Member{
		Type:    p.text(),
		TypeTok: p.current,
	}

	if err := p.expect(token.Ident); err != nil {
		return ast.Member{}, err
	}

	member.Name = p.text()
	member.NameTok = p.current

	if p.next.Is(token.Assign) {
		p.advance() // The '='

		literal, err := p.parseLiteral()
		if err != nil {
			return ast.Member{}, err
		}

		member.Init = &literal
	}

	if err := p.expect(token.Semicolon); err != nil {
		return ast.Member{}, err
	}

	p.advance()

	return member, nil
}

// parseLiteral parses a literal initializer expression.
//
// It is called with p.current on the '=' and returns with p.current on
// the literal itself.
func (p *Parser) parseLiteral() (ast.Literal, error) {
	if err := p.expect(token.String, token.Int, token.True, token.False); err != nil {
		return ast.Literal{}, err
	}

	literal := ast.Literal{
		Text: p.text(),
		Tok:  p.current,
	}

	switch p.current.Kind {
	case token.String:
		literal.Kind = ast.LiteralString
	case token.Int:
		literal.Kind = ast.LiteralInt
	default:
		literal.Kind = ast.LiteralBool
	}

	return literal, nil
}

// synchroniseMember recovers from an error inside a contract body, discarding
// tokens up to and including the next ';' but stopping short of anything that
// closes or starts a new scope.
func (p *Parser) synchroniseMember() {
	for {
		if p.current.Is(token.EOF, token.RightBrace, token.Contract) {
			return
		}

		if p.current.Is(token.Semicolon) {
			p.advance()
			return
		}

		p.advance()
	}
}

// kindsString renders a list of token kinds for an error message.
func kindsString(kinds []token.Kind) string {
	if len(kinds) == 1 {
		return kinds[0].String()
	}

	names := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		names = append(names, kind.String())
	}

	return "one of " + strings.Join(names, ", ")
}
