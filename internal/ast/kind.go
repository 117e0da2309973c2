package ast

// Kind tags a syntax node.
type Kind uint8

const (
	KindProgram Kind = iota
	KindVarDecl
	KindFunDecl
	KindTypeInt
	KindTypeVoid
	KindParam
	KindBlock
	KindIf
	KindWhile
	KindReturn
	KindAssign
	KindRelOp
	KindAddOp
	KindMulOp
	KindVarRef
	KindArrayIndex
	KindCall
	KindId
	KindNum

	kindCount
)

var kindNames = [...]string{
	KindProgram:    "Program",
	KindVarDecl:    "VarDecl",
	KindFunDecl:    "FunDecl",
	KindTypeInt:    "TypeInt",
	KindTypeVoid:   "TypeVoid",
	KindParam:      "Param",
	KindBlock:      "Block",
	KindIf:         "If",
	KindWhile:      "While",
	KindReturn:     "Return",
	KindAssign:     "Assign",
	KindRelOp:      "RelOp",
	KindAddOp:      "AddOp",
	KindMulOp:      "MulOp",
	KindVarRef:     "VarRef",
	KindArrayIndex: "ArrayIndex",
	KindCall:       "Call",
	KindId:         "Id",
	KindNum:        "Num",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Invalid"
}

// Valid reports whether k is one of the closed set of node kinds.
func (k Kind) Valid() bool { return k < kindCount }

// PayloadKind says which attribute a node kind carries.
type PayloadKind uint8

const (
	PayloadNone PayloadKind = iota
	PayloadLexeme
	PayloadLiteral
)

// Payload reports which Attr variant nodes of this kind carry.
func (k Kind) Payload() PayloadKind {
	switch k {
	case KindId, KindVarRef, KindCall, KindRelOp, KindAddOp, KindMulOp:
		return PayloadLexeme
	case KindNum:
		return PayloadLiteral
	default:
		return PayloadNone
	}
}

// IsExpr reports whether nodes of this kind receive a resolved type.
func (k Kind) IsExpr() bool {
	switch k {
	case KindAssign, KindRelOp, KindAddOp, KindMulOp, KindVarRef, KindArrayIndex, KindCall, KindNum:
		return true
	default:
		return false
	}
}

// OwnsScope reports whether nodes of this kind open a scope.
func (k Kind) OwnsScope() bool {
	return k == KindFunDecl || k == KindBlock
}

// IsType reports whether k is a type specifier node.
func (k Kind) IsType() bool {
	return k == KindTypeInt || k == KindTypeVoid
}
