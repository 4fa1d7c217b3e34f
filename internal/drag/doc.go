package drag

// Package drag interprets pointer gestures over the thumbnail grid. A press
// must travel past an activation distance before it counts as a drag, which
// keeps clicks on the same tile from reordering anything.
