package resolver

// State is a step in the resolution of one query.
type State string

const (
	StateIdle              State = "IDLE"
	StateDispatching       State = "DISPATCHING"
	StateRemoteSucceeded   State = "REMOTE_SUCCEEDED"
	StateRemoteFailed      State = "REMOTE_FAILED"
	StateFallbackSucceeded State = "FALLBACK_SUCCEEDED"
	StateFallbackFailed    State = "FALLBACK_FAILED"
	StateDone              State = "DONE"
)
