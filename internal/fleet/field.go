package fleet

import "github.com/nerrad567/shiperd/internal/query"

// Field is a value in a partial update.
//
//   - Set false: the field was absent and is left unchanged.
//   - Set true, Null true: the field is cleared to NULL.
//   - Set true, Null false: the field is written with Value.
type Field[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Present returns a Field that writes v.
func Present[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Null returns a Field that writes NULL.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// Ptr returns the field as a pointer, nil when null or absent.
func (f Field[T]) Ptr() *T {
	if !f.Set || f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// assign copies a set, non-null value into dst.
func (f Field[T]) assign(dst *T) {
	if f.Set && !f.Null {
		*dst = f.Value
	}
}

// setOn adds the field to u when it was present.
func setOn[T any](u *query.Update, column string, f Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		u.Set(column, nil)
		return
	}
	u.Set(column, f.Value)
}
