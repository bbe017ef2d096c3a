// Package storedefs defines the API of the REPL history storage, so that the
// REPL can be tested without a database.
package storedefs

import "errors"

// ErrNoEntry is returned when no history entry has the requested sequence
// number.
var ErrNoEntry = errors.New("no such history entry")

// Store keeps the statements entered in the REPL, numbered by a sequence that
// only grows.
type Store interface {
	AddEntry(text string) (int, error)
	Entry(seq int) (string, error)
	Recent(n int) ([]Entry, error)
	Trim(keep int) error
	Clear() error
}

// Entry is one statement in the history. A statement spanning several lines
// is a single entry.
type Entry struct {
	Seq  int
	Text string
}
