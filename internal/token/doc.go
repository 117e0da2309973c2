// Package token defines the lexical tokens of C-minus.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Comments and whitespace never reach the token stream.
package token
