package engine

// Status is the readiness of the loaded media item.
//
// A load starts in StatusUnknown and resolves exactly once:
//
//	┌──────────┐   resolved    ┌──────────────┐
//	│ Unknown  │ ─────────────▶│ ReadyToPlay  │
//	└──────────┘               └──────────────┘
//	     │
//	     │ resolution failed   ┌──────────────┐
//	     └────────────────────▶│    Failed    │
//	                           └──────────────┘
//
// Neither ReadyToPlay nor Failed lead back to Unknown for the same load.
type Status int

const (
	StatusUnknown Status = iota
	StatusReadyToPlay
	StatusFailed
)

// String returns the status name for debugging.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "Unknown"
	case StatusReadyToPlay:
		return "ReadyToPlay"
	case StatusFailed:
		return "Failed"
	default:
		return "Invalid"
	}
}

// IsResolved returns true once the item is ready or failed.
func (s Status) IsResolved() bool {
	return s == StatusReadyToPlay || s == StatusFailed
}

// StatusChange is emitted when the item status changes.
type StatusChange struct {
	Old Status
	New Status
}
