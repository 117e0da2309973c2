package ast

// ScopeID identifies a lexical scope. Ids are issued by a single monotonic
// counter per analysis; the global scope is always 0.
type ScopeID int32

const (
	// NoScope marks a node that owns no scope.
	NoScope ScopeID = -1
	// GlobalScope is the id of the outermost scope.
	GlobalScope ScopeID = 0
)

// IsValid reports whether the id refers to an issued scope.
func (id ScopeID) IsValid() bool { return id >= 0 }
