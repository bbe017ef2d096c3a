// Package block finds the extent of delimited and multi-line constructs.
//
// Text inside a string literal never counts as a delimiter. A string literal
// starts with ' or " and ends at the next occurrence of the same quote or at
// the end of the line; there are no escape sequences.
package block

import "strings"

var closers = map[byte]byte{'(': ')', '{': '}'}

// MatchDelim returns the index of the delimiter matching the opening delimiter
// at s[open], which must be '(' or '{'. It returns false if s[open] is not an
// opening delimiter or if it is never closed.
func MatchDelim(s string, open int) (int, bool) {
	if open < 0 || open >= len(s) {
		return -1, false
	}
	o := s[open]
	c, ok := closers[o]
	if !ok {
		return -1, false
	}
	depth := 0
	at := -1
	walkCode(s[open:], func(i int, ch byte) bool {
		switch ch {
		case o:
			depth++
		case c:
			depth--
			if depth == 0 {
				at = open + i
				return false
			}
		}
		return true
	})
	return at, at >= 0
}

// SplitTopLevel splits s on sep, ignoring occurrences of sep inside string
// literals and parentheses. The parts are trimmed of surrounding whitespace.
// It returns nil if s is blank.
func SplitTopLevel(s string, sep byte) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	depth, start := 0, 0
	walkCode(s, func(i int, ch byte) bool {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
		return true
	})
	return append(parts, strings.TrimSpace(s[start:]))
}

// IndexCode is like strings.IndexByte, but skips string literals.
func IndexCode(s string, b byte) int {
	at := -1
	walkCode(s, func(i int, ch byte) bool {
		if ch == b {
			at = i
			return false
		}
		return true
	})
	return at
}

// Calls f with each byte of s that is outside string literals, including the
// quotes, which are never passed to f. Stops when f returns false.
func walkCode(s string, f func(i int, ch byte) bool) {
	var quote byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			} else if ch == '\n' {
				quote = 0
				if !f(i, ch) {
					return
				}
			}
		case ch == '"' || ch == '\'':
			quote = ch
		default:
			if !f(i, ch) {
				return
			}
		}
	}
}

// UnclosedQuote reports whether s ends inside a string literal.
func UnclosedQuote(s string) bool {
	var quote byte
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		}
	}
	return quote != 0
}
