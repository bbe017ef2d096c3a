// Package diag contains the error taxonomy of the interpreter and utilities
// for showing errors to the user.
package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies an error.
type Kind int

// Error kinds.
const (
	Syntax Kind = iota
	Runtime
	Type
	UndefinedVar
	ConstModify
	DivByZero
	File
	Memory
)

var kindNames = [...]string{
	Syntax:       "Syntax Error",
	Runtime:      "Runtime Error",
	Type:         "Type Error",
	UndefinedVar: "Undefined Variable Error",
	ConstModify:  "Constant Modification Error",
	DivByZero:    "Division by Zero Error",
	File:         "File Error",
	Memory:       "Memory Error",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("!(bad kind %d)", int(k))
	}
	return kindNames[k]
}

// Error is a fatal error of the interpreter. Line and File are filled in by
// the statement runner once the error reaches it; Ranging is only meaningful
// for errors produced by the static checker.
type Error struct {
	Kind    Kind
	Message string
	Line    int
	File    string
	Ranging
}

// Errorf creates a new *Error with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Error returns a plain text representation of the error, in the form
//
//	Syntax Error on line 3 in file 'a.nvq': message
func (e *Error) Error() string {
	return e.header() + ": " + e.Message
}

func (e *Error) header() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	if e.Line > 0 {
		fmt.Fprintf(&sb, " on line %d", e.Line)
	}
	if e.File != "" {
		fmt.Fprintf(&sb, " in file '%s'", e.File)
	}
	return sb.String()
}

// Variables controlling the style of the message in Show.
var (
	messageStart = "\033[31;1m"
	messageEnd   = "\033[m"
)

// Show shows the error with the message highlighted.
func (e *Error) Show(indent string) string {
	return indent + e.header() + ": " + messageStart + e.Message + messageEnd
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// WithLine sets the line of err if it is an *Error without one. It returns
// err.
func WithLine(err error, line int) error {
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		e.Line = line
	}
	return err
}

// WithFile sets the file of err if it is an *Error without one. It returns
// err.
func WithFile(err error, file string) error {
	var e *Error
	if errors.As(err, &e) && e.File == "" {
		e.File = file
	}
	return err
}
