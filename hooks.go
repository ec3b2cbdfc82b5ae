package nscache

// Hooks are lightweight callbacks for failures the caller never observes on
// the error path. Implementations MUST be cheap and non-blocking; the facade
// calls them on hot paths. Wrap with hooks/async to offload.
type Hooks interface {
	// The generation counter at setKey could not be read or decoded.
	// The operation proceeded with the sentinel generation.
	GenerationUnreadable(setKey string, err error)

	// A dispatched write failed after Set already returned true to the
	// caller. bytes is the payload length.
	BackgroundSetFailed(key string, bytes int, err error)

	// Quit on the backend failed during Close.
	BackendQuitFailed(err error)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) GenerationUnreadable(string, error)     {}
func (NopHooks) BackgroundSetFailed(string, int, error) {}
func (NopHooks) BackendQuitFailed(error)                {}
