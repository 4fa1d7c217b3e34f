package platform

// Package platform contains OS integration: standard directories, expanding
// dropped folders into files, and opening or revealing files with the system
// applications.
