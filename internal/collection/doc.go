package collection

// Package collection holds the authoritative ordered working set of images
// for one merge session. It supports append, remove-by-key and reorder with
// array-move semantics, and signals when the set drains to empty.
