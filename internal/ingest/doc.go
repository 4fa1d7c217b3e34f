package ingest

// Package ingest turns raw dropped or selected filesystem paths into ordered
// image items: de-duplication, an image extension allow-list, locale-aware
// natural sorting on file names, and a call out to the backend for thumbnails.
