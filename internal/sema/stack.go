package sema

// stack is a LIFO with a fixed capacity.
type stack[T any] struct {
	name  string
	limit int
	items []T
}

func newStack[T any](name string, limit int) stack[T] {
	return stack[T]{name: name, limit: limit}
}

func (s *stack[T]) push(v T, line int) error {
	if len(s.items) >= s.limit {
		return &LimitError{Stack: s.name, Limit: s.limit, Line: line}
	}
	s.items = append(s.items, v)
	return nil
}

func (s *stack[T]) pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v, true
}

func (s *stack[T]) top() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

func (s *stack[T]) size() int { return len(s.items) }

func (s *stack[T]) reset() { s.items = s.items[:0] }
