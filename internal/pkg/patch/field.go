// Package patch models partial updates where a field can be absent, cleared or set.
package patch

type state int

const (
	absent state = iota
	null
	present
)

// Field is a tri-state update value. The zero value is absent.
type Field[T any] struct {
	state state
	value T
}

// Keep leaves the target untouched.
func Keep[T any]() Field[T] {
	return Field[T]{}
}

// Clear asks for the target to be emptied.
func Clear[T any]() Field[T] {
	return Field[T]{state: null}
}

// Set replaces the target with v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: present, value: v}
}

// FromPtr maps nil to Clear and non-nil to Set.
func FromPtr[T any](v *T) Field[T] {
	if v == nil {
		return Clear[T]()
	}
	return Set(*v)
}

// Supplied reports whether the caller mentioned the field at all.
func (f Field[T]) Supplied() bool {
	return f.state != absent
}

func (f Field[T]) IsClear() bool {
	return f.state == null
}

func (f Field[T]) IsSet() bool {
	return f.state == present
}

// Value returns the new value and true only for Set fields.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == present
}
