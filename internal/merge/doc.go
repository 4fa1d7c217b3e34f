// Package merge drives the single user-triggered merge of the working set into
// one PDF file through the backend.
package merge
