package render

import "github.com/coreman2200/textime/internal/model"

// Mode generates content into the shared content buffer. Handle must only
// rewrite the buffer (and set Dirty) when its cached inputs changed.
type Mode interface {
	Name() string
	Begin(buf *model.Buffer)
	Handle(buf *model.Buffer)
	// AllowAnimation reports whether effects may transform this mode's
	// output. Raw hardware test patterns must reach the strip unmodified.
	AllowAnimation() bool
}

// Animation transforms the content buffer into the animated buffer.
type Animation interface {
	Name() string
	Begin(in, out *model.Buffer)
	Handle(in, out *model.Buffer)
}

// ColorPolicy selects how a mode picks the color of what it draws.
type ColorPolicy int

const (
	ColorFixed ColorPolicy = iota
	ColorRandomAll
	ColorRandomLetter
	ColorRandomWord
)

func (p ColorPolicy) Valid() bool {
	return p >= ColorFixed && p <= ColorRandomWord
}

func (p ColorPolicy) String() string {
	switch p {
	case ColorFixed:
		return "fixed"
	case ColorRandomAll:
		return "all"
	case ColorRandomLetter:
		return "letter"
	case ColorRandomWord:
		return "word"
	}
	return "unknown"
}

// Colorer is implemented by modes that draw with a configurable color.
type Colorer interface {
	SetColor(c model.Color)
	Color() model.Color
	SetColorPolicy(p ColorPolicy)
}

type Named interface {
	Name() string
}

// Registry is an ordered list of interchangeable implementations addressed
// by index.
type Registry[T Named] struct{ items []T }

func NewRegistry[T Named](items ...T) *Registry[T] {
	r := &Registry[T]{}
	for _, it := range items {
		r.Register(it)
	}
	return r
}

func (r *Registry[T]) Register(it T) {
	r.items = append(r.items, it)
}

func (r *Registry[T]) Len() int { return len(r.items) }

func (r *Registry[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(r.items) {
		return zero, false
	}
	return r.items[i], true
}

// Index returns the position of the named entry, or -1.
func (r *Registry[T]) Index(name string) int {
	for i, it := range r.items {
		if it.Name() == name {
			return i
		}
	}
	return -1
}

func (r *Registry[T]) List() []string {
	out := make([]string, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.Name())
	}
	return out
}

func (r *Registry[T]) Each(f func(i int, it T)) {
	for i, it := range r.items {
		f(i, it)
	}
}
