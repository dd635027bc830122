// Package ast declares the parse tree for the contract language.
//
// The tree is deliberately flat, contracts hold members and members hold at
// most one literal initializer. Tokens are retained on every node so later
// phases can report positioned diagnostics without re-scanning.
package ast

import (
	"go.followtheprocess.codes/syntest/internal/syntax/token"
)

// LiteralKind discriminates the kinds of literal expression.
type LiteralKind int

// Literal kinds.
const (
	LiteralInt    LiteralKind = iota // LiteralInt
	LiteralString                    // LiteralString
	LiteralBool                      // LiteralBool
)

// File is a single parsed contract source file, the root node.
type File struct {
	Pragmas   []Pragma   // Pragma directives, in source order
	Contracts []Contract // Contract declarations, in source order
}

// Pragma is a pragma directive e.g. 'pragma contract >=0.0;'.
type Pragma struct {
	Name       string      // The pragma name e.g. "contract"
	Constraint string      // The raw version constraint text
	NameTok    token.Token // Token for the pragma name
}

// Contract is a contract declaration.
type Contract struct {
	Name    string      // The declared contract name
	Members []Member    // State variable members, in source order
	NameTok token.Token // Token for the contract name
}

// Member is a single state variable declaration inside a contract.
type Member struct {
	Type    string      // The declared type name e.g. "uint"
	Name    string      // The declared variable name
	Init    *Literal    // Initializer, nil if the member is uninitialized
	TypeTok token.Token // Token for the type name
	NameTok token.Token // Token for the variable name
}

// Literal is a literal initializer expression.
type Literal struct {
	Text string      // Raw literal text, string literals keep their quotes
	Kind LiteralKind // What kind of literal this is
	Tok  token.Token // The literal token
}
