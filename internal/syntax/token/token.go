// Package token provides the set of lexical tokens for the contract language.
package token

import (
	"fmt"
	"slices"
)

// Kind is the kind of a token.
type Kind int

// Token definitions.
const (
	EOF        Kind = iota // EOF
	Error                  // Error
	Comment                // Comment
	Ident                  // Ident
	String                 // String
	Int                    // Int
	Assign                 // Assign
	Semicolon              // Semicolon
	LeftBrace              // LeftBrace
	RightBrace             // RightBrace
	Text                   // Text
	Pragma                 // Pragma
	Contract               // Contract
	TypeName               // TypeName
	True                   // True
	False                  // False
)

// String returns the name of the [Kind].
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Error:
		return "Error"
	case Comment:
		return "Comment"
	case Ident:
		return "Ident"
	case String:
		return "String"
	case Int:
		return "Int"
	case Assign:
		return "Assign"
	case Semicolon:
		return "Semicolon"
	case LeftBrace:
		return "LeftBrace"
	case RightBrace:
		return "RightBrace"
	case Text:
		return "Text"
	case Pragma:
		return "Pragma"
	case Contract:
		return "Contract"
	case TypeName:
		return "TypeName"
	case True:
		return "True"
	case False:
		return "False"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a lexical token in a contract source file.
type Token struct {
	Kind  Kind // The kind of token this is
	Start int  // Byte offset from the start of the file to the start of this token
	End   int  // Byte offset from the start of the file to the end of this token
}

// String implements [fmt.Stringer] for a [Token].
func (t Token) String() string {
	return fmt.Sprintf("<Token::%s start=%d, end=%d>", t.Kind, t.Start, t.End)
}

// Is reports whether the token is any of the provided [Kind]s.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// Keyword reports whether a string refers to a keyword, returning its [Kind]
// and true if it is. Otherwise [Ident] and false are returned.
func Keyword(text string) (kind Kind, ok bool) {
	switch text {
	case "pragma":
		return Pragma, true
	case "contract":
		return Contract, true
	case "true":
		return True, true
	case "false":
		return False, true
	case "uint", "int", "bool", "string", "address":
		return TypeName, true
	default:
		return Ident, false
	}
}
