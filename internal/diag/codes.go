package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexBadNumber    Code = 1002
	LexUnterminated Code = 1003

	// syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectType       Code = 2004
	SynExpectExpression Code = 2005
	SynUnclosedParen    Code = 2006
	SynUnclosedBrace    Code = 2007
	SynUnclosedBracket  Code = 2008
	SynInvalidTarget    Code = 2009

	// semantic: declarations
	SemaInfo               Code = 3000
	SemaRedeclaredVariable Code = 3001
	SemaRedeclaredParam    Code = 3002
	SemaRedeclaredFunction Code = 3003
	SemaVarShadowsFunction Code = 3004
	SemaVoidVariable       Code = 3005
	SemaVoidParam          Code = 3006

	// semantic: name resolution
	SemaUndeclaredVariable Code = 3010
	SemaUndeclaredFunction Code = 3011

	// semantic: kind misuse
	SemaFunctionAsVariable Code = 3020
	SemaNotCallable        Code = 3021
	SemaNotArray           Code = 3022
	SemaIndexBaseInvalid   Code = 3023
	SemaIndexMissing       Code = 3024

	// semantic: types
	SemaArithmeticOperands Code = 3030
	SemaRelationalOperands Code = 3031
	SemaIndexType          Code = 3032
	SemaAssignTarget       Code = 3033
	SemaAssignVoid         Code = 3034
	SemaAssignIncompatible Code = 3035
	SemaReturnValueInVoid  Code = 3036
	SemaReturnMissingValue Code = 3037
	SemaReturnVoidValue    Code = 3038
	SemaArgumentType       Code = 3039

	// semantic: calls and program shape
	SemaArityMismatch     Code = 3050
	SemaIgnoredReturn     Code = 3060
	SemaMissingEntryPoint Code = 3070

	// I/O
	IOLoadFileError   Code = 4001
	IODecodeTreeError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:     "Unknown error",
	LexInfo:         "Lexical information",
	LexUnknownChar:  "Unknown character",
	LexBadNumber:    "Bad number",
	LexUnterminated: "Unterminated comment",

	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectSemicolon:  "Expected semicolon",
	SynExpectIdentifier: "Expected identifier",
	SynExpectType:       "Expected type",
	SynExpectExpression: "Expected expression",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynUnclosedBrace:    "Unclosed brace",
	SynUnclosedBracket:  "Unclosed bracket",
	SynInvalidTarget:    "Invalid assignment target",

	SemaInfo:               "Semantic information",
	SemaRedeclaredVariable: "Variable redeclared",
	SemaRedeclaredParam:    "Parameter redeclared",
	SemaRedeclaredFunction: "Function redeclared",
	SemaVarShadowsFunction: "Variable named after a function",
	SemaVoidVariable:       "Variable declared void",
	SemaVoidParam:          "Invalid void parameter",

	SemaUndeclaredVariable: "Undeclared variable",
	SemaUndeclaredFunction: "Undeclared function",

	SemaFunctionAsVariable: "Function used as variable",
	SemaNotCallable:        "Identifier is not a function",
	SemaNotArray:           "Identifier is not an array",
	SemaIndexBaseInvalid:   "Invalid index base",
	SemaIndexMissing:       "Missing array index",

	SemaArithmeticOperands: "Arithmetic operands must be int",
	SemaRelationalOperands: "Relational operands must be int",
	SemaIndexType:          "Array index must be int",
	SemaAssignTarget:       "Invalid assignment target",
	SemaAssignVoid:         "Assigning void value",
	SemaAssignIncompatible: "Incompatible assignment",
	SemaReturnValueInVoid:  "Void function returns a value",
	SemaReturnMissingValue: "Missing return value",
	SemaReturnVoidValue:    "Returning void value",
	SemaArgumentType:       "Argument type mismatch",

	SemaArityMismatch:     "Wrong number of arguments",
	SemaIgnoredReturn:     "Return value ignored",
	SemaMissingEntryPoint: "Missing entry point",

	IOLoadFileError:   "I/O error",
	IODecodeTreeError: "Malformed syntax tree",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Category groups codes into the error taxonomy used by callers.
type Category uint8

const (
	CategoryNone Category = iota
	CategoryLexical
	CategorySyntax
	CategoryIO
	CategoryRedeclaration
	CategoryUndeclaredUse
	CategoryKindMismatch
	CategoryTypeMismatch
	CategoryArityMismatch
	CategoryUnusedReturnValue
	CategoryMissingEntryPoint
)

func (c Category) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	case CategoryIO:
		return "io"
	case CategoryRedeclaration:
		return "redeclaration"
	case CategoryUndeclaredUse:
		return "undeclared-use"
	case CategoryKindMismatch:
		return "kind-mismatch"
	case CategoryTypeMismatch:
		return "type-mismatch"
	case CategoryArityMismatch:
		return "arity-mismatch"
	case CategoryUnusedReturnValue:
		return "unused-return-value"
	case CategoryMissingEntryPoint:
		return "missing-entry-point"
	default:
		return "none"
	}
}

// Category reports which taxonomy bucket the code belongs to.
func (c Code) Category() Category {
	switch c {
	case SemaRedeclaredVariable, SemaRedeclaredParam, SemaRedeclaredFunction, SemaVarShadowsFunction:
		return CategoryRedeclaration
	case SemaUndeclaredVariable, SemaUndeclaredFunction:
		return CategoryUndeclaredUse
	case SemaFunctionAsVariable, SemaNotCallable, SemaNotArray, SemaIndexBaseInvalid, SemaIndexMissing:
		return CategoryKindMismatch
	case SemaVoidVariable, SemaVoidParam, SemaArithmeticOperands, SemaRelationalOperands, SemaIndexType,
		SemaAssignTarget, SemaAssignVoid, SemaAssignIncompatible, SemaReturnValueInVoid,
		SemaReturnMissingValue, SemaReturnVoidValue, SemaArgumentType:
		return CategoryTypeMismatch
	case SemaArityMismatch:
		return CategoryArityMismatch
	case SemaIgnoredReturn:
		return CategoryUnusedReturnValue
	case SemaMissingEntryPoint:
		return CategoryMissingEntryPoint
	}
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return CategoryLexical
	case ic >= 2000 && ic < 3000:
		return CategorySyntax
	case ic >= 4000 && ic < 5000:
		return CategoryIO
	}
	return CategoryNone
}
