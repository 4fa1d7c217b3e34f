package model

// WorkingSetState represents the lifecycle state of the working set
type WorkingSetState string

const (
	// WorkingSetEmpty means no images are staged; the selection screen is shown
	WorkingSetEmpty WorkingSetState = "Empty"

	// WorkingSetPopulated means at least one image is staged for review
	WorkingSetPopulated WorkingSetState = "Populated"
)

// String returns the string representation of WorkingSetState
func (s WorkingSetState) String() string {
	return string(s)
}

// IsEmpty returns true if no images are staged
func (s WorkingSetState) IsEmpty() bool {
	return s != WorkingSetPopulated
}

// StateFor returns the state matching a working set of n items
func StateFor(n int) WorkingSetState {
	if n > 0 {
		return WorkingSetPopulated
	}
	return WorkingSetEmpty
}
