package analyze

// Optional holds a value that may not have been set yet. Zero is a valid
// derivative, so presence has to be tracked separately from the value.
type Optional[T any] struct {
	v  T
	ok bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{v: v, ok: true}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.v, o.ok
}
