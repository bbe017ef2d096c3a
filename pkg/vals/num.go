package vals

import (
	"strconv"
)

// IsFloat reports whether s is written as a float literal: digits with
// exactly one '.', optionally preceded by '-'.
func IsFloat(s string) bool {
	i := 0
	if len(s) > 0 && s[0] == '-' {
		i = 1
	}
	dots := 0
	for ; i < len(s); i++ {
		if s[i] == '.' {
			dots++
		} else if !isDigit(s[i]) {
			return false
		}
	}
	return dots == 1
}

// StartsNumeric reports whether s starts with a digit, or a '-' followed by a
// digit.
func StartsNumeric(s string) bool {
	if len(s) > 0 && isDigit(s[0]) {
		return true
	}
	return len(s) > 1 && s[0] == '-' && isDigit(s[1])
}

// ParseNumber parses a numeric literal. It fails unless s starts with a digit
// or '-' followed by a digit.
//
// If s is a float literal according to IsFloat, the result is a float32.
// Otherwise the longest prefix of s that forms an integer is parsed, so "12ab"
// parses as 12 and "1.2.3" parses as 1.
func ParseNumber(s string) (Value, bool) {
	if !StartsNumeric(s) {
		return nil, false
	}
	if IsFloat(s) {
		if f, err := strconv.ParseFloat(s, 32); err == nil {
			return float32(f), true
		}
	}
	end := 0
	if s[0] == '-' {
		end = 1
	}
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	// On overflow, ParseInt returns the closest representable value.
	i, _ := strconv.ParseInt(s[:end], 10, 64)
	return i, true
}

// Unquote returns the content of s if s is a complete string literal: it
// starts with a single or double quote and the first matching quote is its
// last character.
func Unquote(s string) (string, bool) {
	if len(s) < 2 || (s[0] != '"' && s[0] != '\'') {
		return "", false
	}
	q := s[0]
	for i := 1; i < len(s); i++ {
		if s[i] == q {
			if i == len(s)-1 {
				return s[1:i], true
			}
			return "", false
		}
	}
	return "", false
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
