// Package output renders requirements lists and writes them to their
// destination.
//
// The text format (format.go) is one specifier per line with a trailing
// newline only when the list is non-empty. Writers (writer.go) send the
// rendered bytes to stdout or to a file via the [Writer] interface.
package output
