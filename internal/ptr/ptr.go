package ptr

// Ref returns a pointer to the value passed as argument. Handy for the
// nullable actual-metric fields on training sessions.
func Ref[T any](v T) *T {
	return &v
}
