package ptr

func Int(i int) *int {
	return &i
}

func String(s string) *string {
	return &s
}

func Float64(f float64) *float64 {
	return &f
}

func Bool(b bool) *bool {
	return &b
}

// Deref returns the pointed-to value, or def when p is nil.
func Deref[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func Of[T any](v T) *T {
	return &v
}
