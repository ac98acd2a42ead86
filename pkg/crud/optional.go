package crud

// Optional carries either a found value or nothing. Absence is a normal
// outcome, not a failure.
type Optional[T any] struct {
	value T
	found bool
}

func Found[T any](value T) Optional[T] {
	return Optional[T]{value: value, found: true}
}

func NotFound[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.found
}

func (o Optional[T]) IsFound() bool {
	return o.found
}

func (o Optional[T]) OrElse(fallback T) T {
	if !o.found {
		return fallback
	}
	return o.value
}
