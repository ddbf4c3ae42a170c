package ingest

import "fmt"

// Collector receives secondary documents during a join pass.
type Collector interface {
	Collect(key string, doc interface{}) error
}

// Grouping holds secondary documents keyed by join identifier, in the order
// they were read.
type Grouping[T any] struct {
	groups map[string][]T
	count  int
}

// NewGrouping returns an empty Grouping.
func NewGrouping[T any]() *Grouping[T] {
	return &Grouping[T]{groups: make(map[string][]T)}
}

// Add appends v to the group of key.
func (g *Grouping[T]) Add(key string, v T) {
	g.groups[key] = append(g.groups[key], v)
	g.count++
}

// Collect implements Collector. doc must be a T.
func (g *Grouping[T]) Collect(key string, doc interface{}) error {
	v, ok := doc.(T)
	if !ok {
		var zero T
		return fmt.Errorf("grouping: got %T, want %T", doc, zero)
	}
	g.Add(key, v)
	return nil
}

// Items returns the group of key. It is never nil, so a primary document
// without matches still gets an empty list.
func (g *Grouping[T]) Items(key string) []T {
	items := g.groups[key]
	if items == nil {
		return []T{}
	}
	return items
}

// Keys returns the number of distinct join keys.
func (g *Grouping[T]) Keys() int { return len(g.groups) }

// Len returns the total number of collected documents.
func (g *Grouping[T]) Len() int { return g.count }
