package app

// WithRunID fixes the run id of a for tests.
func WithRunID(a *App, id string) *App {
	a.newRunID = func() string { return id }
	return a
}
