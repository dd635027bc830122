// Package scanner implements a lexical scanner for contract source files,
// reading the raw source text and emitting a stream of tokens to be consumed
// by the parser.
//
// The scanner is a concurrent, state-function based scanner similar to that
// described by Rob Pike in his talk [Lexical Scanning in Go], based on the
// implementation of text/template in the Go standard library.
//
// The scanner proceeds one utf-8 rune at a time until a particular token is
// recognised, the token is then "emitted" over a channel where it may be
// consumed by a client e.g. the parser. The state of the scanner is
// maintained between token emits, the "scanFns" pass the state from one loop
// to another.
//
// A similar approach is used in [BurntSushi/toml].
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
// [BurntSushi/toml]: https://github.com/BurntSushi/toml/blob/master/lex.go
package scanner

import (
	"fmt"
	"sync"
	"unicode"
	"unicode/utf8"

	"go.followtheprocess.codes/syntest/internal/syntax"
	"go.followtheprocess.codes/syntest/internal/syntax/token"
)

const (
	eof        = rune(-1) // eof signifies we have reached the end of the input.
	bufferSize = 32       // token channel buffer size
)

// scanFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type scanFn func(*Scanner) scanFn

// Scanner is the contract source scanner.
type Scanner struct {
	tokens      chan token.Token    // Channel on which to emit scanned tokens
	diagnostics []syntax.Diagnostic // Diagnostics gathered during scanning, one per Error token
	src         []byte              // Raw source text
	start       int                 // The start position of the current token
	pos         int                 // Current scanner position in src (bytes, 0 indexed)
	width       int                 // Byte width of the rune last returned by next
	mu          sync.Mutex          // Guards diagnostics
}

// New returns a new [Scanner] and kicks off the state machine in a goroutine.
func New(src []byte) *Scanner {
	s := &Scanner{
		tokens: make(chan token.Token, bufferSize),
		src:    src,
	}

	// run terminates when the scanning state machine is finished and all the
	// tokens are drained from s.tokens, so no other synchronisation needed here
	go s.run()

	return s
}

// Scan scans the input and returns the next token.
func (s *Scanner) Scan() token.Token {
	return <-s.tokens
}

// TakeDiagnostic pops the oldest unconsumed scanning diagnostic.
//
// The scanner records exactly one diagnostic per [token.Error] it emits, in
// source order, so a client consuming one diagnostic per Error token it
// receives sees scan errors in the same order as every other token.
func (s *Scanner) TakeDiagnostic() (syntax.Diagnostic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.diagnostics) == 0 {
		return syntax.Diagnostic{}, false
	}

	diag := s.diagnostics[0]
	s.diagnostics = s.diagnostics[1:]

	return diag, true
}

// next returns the next utf8 rune in the input, or [eof], and advances the
// scanner over that rune such that successive calls to [Scanner.next] iterate
// through src one rune at a time.
func (s *Scanner) next() rune {
	if s.pos >= len(s.src) {
		s.width = 0
		return eof
	}

	char, width := utf8.DecodeRune(s.src[s.pos:])
	s.pos += width
	s.width = width

	return char
}

// peek returns the next utf8 rune in the input, or [eof], but does not
// advance the scanner.
func (s *Scanner) peek() rune {
	if s.pos >= len(s.src) {
		return eof
	}

	char, _ := utf8.DecodeRune(s.src[s.pos:])

	return char
}

// skip ignores any characters for which the predicate returns true, stopping
// at the first one that returns false such that after it returns,
// [Scanner.next] returns the first 'false' char.
//
// The scanner start position is brought up to the current position before
// returning, effectively ignoring everything it's travelled over.
func (s *Scanner) skip(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}

	s.start = s.pos
}

// takeWhile consumes characters so long as the predicate returns true,
// stopping at the first one that returns false such that after it returns,
// [Scanner.next] returns the first 'false' rune.
func (s *Scanner) takeWhile(predicate func(r rune) bool) {
	for predicate(s.peek()) {
		s.next()
	}
}

// takeUntil consumes characters until it hits any of the specified runes.
//
// It stops before it consumes the first specified rune such that after it
// returns, the next call to [Scanner.next] returns the offending rune.
func (s *Scanner) takeUntil(runes ...rune) {
	for {
		next := s.peek()
		for _, r := range runes {
			if next == r {
				return
			}
		}

		s.next()
	}
}

// text returns the chunk of source described by the current token in progress.
func (s *Scanner) text() string {
	return string(s.src[s.start:s.pos])
}

// emit passes a token over the tokens channel, using the scanner's internal
// state to populate position information.
func (s *Scanner) emit(kind token.Kind) {
	s.tokens <- token.Token{
		Kind:  kind,
		Start: s.start,
		End:   s.pos,
	}

	s.start = s.pos
}

// run starts the state machine for the scanner, it runs with each [scanFn]
// returning the next state until one returns nil, at which point the tokens
// channel is closed as a signal to the receiver that no more tokens will
// be sent.
func (s *Scanner) run() {
	for state := scanStart; state != nil; {
		state = state(s)
	}

	close(s.tokens)
}

// error records a scanning diagnostic spanning the current token in progress
// and emits an [token.Error] token for it.
func (s *Scanner) error(msg string) {
	diag := syntax.Diagnostic{
		Type:    syntax.ParserError,
		Start:   s.start,
		End:     s.pos,
		Comment: msg,
	}

	s.mu.Lock()
	s.diagnostics = append(s.diagnostics, diag)
	s.mu.Unlock()

	s.emit(token.Error)
}

// errorf calls error with a formatted message.
func (s *Scanner) errorf(format string, a ...any) {
	s.error(fmt.Sprintf(format, a...))
}

// scanStart is the initial state of the scanner.
func scanStart(s *Scanner) scanFn {
	s.skip(unicode.IsSpace)

	switch char := s.next(); {
	case char == eof:
		s.emit(token.EOF)
		return nil
	case char == '/':
		return scanSlash
	case char == '"':
		return scanString
	case char == '{':
		s.emit(token.LeftBrace)
		return scanStart
	case char == '}':
		s.emit(token.RightBrace)
		return scanStart
	case char == '=':
		s.emit(token.Assign)
		return scanStart
	case char == ';':
		s.emit(token.Semicolon)
		return scanStart
	case isDigit(char):
		return scanNumber
	case isAlpha(char) || char == '_':
		return scanIdent
	case char == utf8.RuneError && s.width == 1:
		// A decode width of 1 is a genuinely invalid byte, a literal
		// U+FFFD in the source decodes with width 3 and falls through
		// to the default case like any other unrecognised character
		s.error("invalid utf8 character")
		return scanStart
	default:
		s.errorf("unrecognised character: %q", char)
		return scanStart
	}
}

// scanSlash scans a '/' initiated line comment.
//
// The opening '/' has already been consumed.
func scanSlash(s *Scanner) scanFn {
	if s.peek() != '/' {
		s.error("unrecognised character: '/'")
		return scanStart
	}

	// Absorb the whole line as the comment
	s.takeUntil('\n', eof)
	s.emit(token.Comment)

	return scanStart
}

// scanString scans a double quoted string literal, the opening quote has
// already been consumed.
//
// The emitted token includes both quotes.
func scanString(s *Scanner) scanFn {
	s.takeUntil('"', '\n', eof)

	if s.peek() != '"' {
		s.error("unterminated string literal")
		return scanStart
	}

	s.next() // Consume the closing quote
	s.emit(token.String)

	return scanStart
}

// scanNumber scans an integer literal, either decimal or '0x' prefixed hex.
//
// The first digit has already been consumed.
func scanNumber(s *Scanner) scanFn {
	if s.text() == "0" && (s.peek() == 'x' || s.peek() == 'X') {
		s.next() // The 'x'
		s.takeWhile(isHex)
	} else {
		s.takeWhile(isDigit)
	}

	s.emit(token.Int)

	return scanStart
}

// scanIdent scans an identifier or keyword, the first character has already
// been consumed.
func scanIdent(s *Scanner) scanFn {
	s.takeWhile(isIdent)

	kind, ok := token.Keyword(s.text())
	s.emit(kind)

	if ok && kind == token.Pragma {
		// The rest of the pragma directive has its own micro-grammar
		return scanPragma
	}

	return scanStart
}

// scanPragma scans the body of a pragma directive: the pragma name followed
// by a free-form version constraint, terminated by ';' or end of line which
// scanStart picks up again.
func scanPragma(s *Scanner) scanFn {
	s.skip(isLineSpace)
	s.takeWhile(isIdent)
	s.emit(token.Ident)

	s.skip(isLineSpace)
	s.takeUntil(';', '\n', eof)
	s.emit(token.Text)

	return scanStart
}

// isAlpha reports whether r is an alpha character.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// isIdent reports whether r is a valid identifier character.
func isIdent(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}

// isDigit reports whether r is a valid ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isHex reports whether r is a valid hexadecimal digit.
func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isLineSpace reports whether r is a non line terminating whitespace
// character, imagine [unicode.IsSpace] but without '\n' or '\r'.
func isLineSpace(r rune) bool {
	return r == ' ' || r == '\t'
}
