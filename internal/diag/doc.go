// Package diag defines the diagnostic model shared by the front end and the
// semantic analyzer.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the parser and both semantic passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does not perform any formatting beyond the single-line short
// form used by golden tests; rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – compact numeric identifier (see codes.go) with a stable string
//     form such as SEM3050. Every code belongs to one Category, which is the
//     coarse taxonomy consumers filter on (Redeclaration, UndeclaredUse,
//     KindMismatch, TypeMismatch, ArityMismatch, UnusedReturnValue,
//     MissingEntryPoint).
//   - Line – 1-based source line of the offending node; 0 when unknown.
//   - Message – short, actionable text.
//   - Notes – optional secondary lines, e.g. "first declared here".
//
// # Emitting diagnostics
//
// Phases receive a Reporter. ReportError/ReportWarning build a ReportBuilder
// that can carry notes before Emit. BagReporter aggregates into a Bag, which
// keeps emission order (the traversal order of the producing pass) unless
// Sort is called explicitly.
package diag
