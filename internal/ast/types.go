package ast

// ExpType is the resolved type of an expression.
type ExpType uint8

const (
	Void ExpType = iota
	Integer
	Boolean
)

func (t ExpType) String() string {
	switch t {
	case Void:
		return "void"
	case Integer:
		return "int"
	case Boolean:
		return "bool"
	default:
		return "invalid"
	}
}

// DeclaredType maps a type specifier node to the type it names.
// Anything other than TypeInt (including a missing node) is Void.
func DeclaredType(typ *Node) ExpType {
	if typ != nil && typ.Kind == KindTypeInt {
		return Integer
	}
	return Void
}
