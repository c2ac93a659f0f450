package ports

// LabelSource resolves a button-number config key ("1".."16") to a
// display label. The second return reports whether the key was
// configured; callers fall back to a built-in default when it was not.
type LabelSource interface {
	Label(key string) (string, bool)
}
