// Package patch applies partial updates to stored records.
//
// A patch is a value of the same shape as a stored record in which every field
// is optional. A nil field means "leave unchanged"; a non-nil field overwrites
// the stored value. The identifier is never part of a binding, so applying a
// patch cannot change a record's identity.
//
// Entities describe their patchable fields once as a list of bindings:
//
//	changed := patch.Apply(
//		patch.Field("name", &c.Name, p.Name),
//		patch.Nullable("description", &c.Description, p.Description),
//	)
//
// Apply is pure apart from writing through the bound destinations. It performs
// no I/O, returns no errors and is idempotent for a given patch.
package patch

import "reflect"

// Binding couples one optional patch value with the field it overwrites.
type Binding interface {
	// Name returns the field name, used when reporting changes.
	Name() string
	// apply writes the patch value into the destination when present and
	// reports whether the stored value actually changed.
	apply() bool
}

type fieldBinding[T any] struct {
	name string
	dst  *T
	src  *T
}

func (b fieldBinding[T]) Name() string { return b.name }

func (b fieldBinding[T]) apply() bool {
	if b.src == nil || b.dst == nil {
		return false
	}
	changed := !equal(*b.dst, *b.src)
	*b.dst = *b.src
	return changed
}

// Field binds a required destination to an optional patch value.
func Field[T any](name string, dst *T, src *T) Binding {
	return fieldBinding[T]{name: name, dst: dst, src: src}
}

type nullableBinding[T any] struct {
	name string
	dst  **T
	src  *T
}

func (b nullableBinding[T]) Name() string { return b.name }

func (b nullableBinding[T]) apply() bool {
	if b.src == nil || b.dst == nil {
		return false
	}
	changed := *b.dst == nil || !equal(**b.dst, *b.src)
	v := *b.src
	*b.dst = &v
	return changed
}

// Nullable binds an optional destination column to an optional patch value.
// The stored pointer is replaced by a copy, so the record never aliases the patch.
func Nullable[T any](name string, dst **T, src *T) Binding {
	return nullableBinding[T]{name: name, dst: dst, src: src}
}

type sliceBinding[T any] struct {
	name string
	dst  *[]T
	src  []T
}

func (b sliceBinding[T]) Name() string { return b.name }

func (b sliceBinding[T]) apply() bool {
	if b.src == nil || b.dst == nil {
		return false
	}
	changed := !equal(*b.dst, b.src)
	v := make([]T, len(b.src))
	copy(v, b.src)
	*b.dst = v
	return changed
}

// Slice binds a list destination to a patch list. A nil list is absent;
// an empty non-nil list clears the destination.
func Slice[T any](name string, dst *[]T, src []T) Binding {
	return sliceBinding[T]{name: name, dst: dst, src: src}
}

// Apply applies every binding in order and returns the names of the fields
// whose stored value changed. Absent patch values are skipped.
func Apply(bindings ...Binding) []string {
	var changed []string
	for _, b := range bindings {
		if b.apply() {
			changed = append(changed, b.Name())
		}
	}
	return changed
}

// Equaler is implemented by values with their own notion of equality,
// such as decimal amounts where 10 and 10.00 are the same value.
type Equaler[T any] interface {
	Equal(T) bool
}

func equal[T any](a, b T) bool {
	if e, ok := any(a).(Equaler[T]); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
