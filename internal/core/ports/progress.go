package ports

// Progress is a hierarchical budget of work units.
//
// A parent allocates part of its remaining budget to children; a scope
// cannot be advanced past its allocation and must be completed exactly once.
//
//go:generate mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks
type Progress interface {
	// Child allocates units of the remaining budget to a new child scope whose own budget is units.
	Child(name string, units int) (Progress, error)
	// Worked advances the scope by units.
	Worked(units int) error
	// Remaining returns the units not yet allocated or worked.
	Remaining() int
	// Done completes the scope, consuming whatever remains.
	Done(err error) error
	// Cancel requests cancellation of the whole scope tree.
	Cancel()
	// Canceled reports whether cancellation was requested.
	Canceled() bool
}
