package crdt

import (
	"cmp"
	"slices"
)

// GSet представляет grow-only set.
// Элементы только добавляются: удаление потребовало бы tombstone-схемы поверх.
type GSet[T cmp.Ordered] struct {
	elements map[T]struct{}
}

// NewGSet создает множество из переданных элементов.
func NewGSet[T cmp.Ordered](elements ...T) GSet[T] {
	set := GSet[T]{elements: make(map[T]struct{}, len(elements))}
	for _, e := range elements {
		set.elements[e] = struct{}{}
	}
	return set
}

// Add возвращает новое множество с добавленным элементом.
func (s GSet[T]) Add(element T) GSet[T] {
	next := NewGSet(s.Elements()...)
	next.elements[element] = struct{}{}
	return next
}

// Contains проверяет наличие элемента.
func (s GSet[T]) Contains(element T) bool {
	_, ok := s.elements[element]
	return ok
}

// Len возвращает количество элементов.
func (s GSet[T]) Len() int {
	return len(s.elements)
}

// Elements возвращает элементы в отсортированном порядке.
func (s GSet[T]) Elements() []T {
	result := make([]T, 0, len(s.elements))
	for e := range s.elements {
		result = append(result, e)
	}
	slices.Sort(result)
	return result
}

// Value возвращает материализованное множество (отсортированный срез).
func (s GSet[T]) Value() []T {
	return s.Elements()
}

// Merge возвращает объединение множеств.
func (s GSet[T]) Merge(other GSet[T]) GSet[T] {
	result := NewGSet(s.Elements()...)
	for e := range other.elements {
		result.elements[e] = struct{}{}
	}
	return result
}

// Equal проверяет равенство множеств.
func (s GSet[T]) Equal(other GSet[T]) bool {
	if len(s.elements) != len(other.elements) {
		return false
	}
	for e := range s.elements {
		if !other.Contains(e) {
			return false
		}
	}
	return true
}
