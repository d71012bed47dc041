package solver

type void struct{}

// set answers membership queries during guess evaluation.
type set[T comparable] map[T]void

func newSet[T comparable](items []T) set[T] {
	s := make(set[T], len(items))
	for _, v := range items {
		s[v] = void{}
	}
	return s
}

func (s set[T]) has(v T) bool {
	_, ok := s[v]
	return ok
}
