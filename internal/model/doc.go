package model

// Package model defines domain data structures used across the app: image
// items staged for merging, working-set states, and the error taxonomy shared
// by ingestion, the collection controller and the merge orchestrator.
