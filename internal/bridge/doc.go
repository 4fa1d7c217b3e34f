// Package bridge talks to the native backend process that renders thumbnails,
// encodes PDFs and opens files. Messages are single-line JSON objects exchanged
// over the process's stdin and stdout.
package bridge
