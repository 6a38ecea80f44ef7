// Package parse turns the raw input buffer into the number list.
package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a line that is not a valid signed 32-bit integer.
// Line is 1-based.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: invalid integer %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse splits buf into lines and parses every non-blank line, after
// trimming surrounding whitespace, as a base-10 int32.
//
// The first malformed line aborts the whole parse; no values are returned
// alongside an error.
func Parse(buf string) ([]int32, error) {
	values := []int32{}
	for i, line := range strings.Split(buf, "\n") {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}

		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, &ParseError{Line: i + 1, Text: text, Err: err}
		}
		values = append(values, int32(n))
	}
	return values, nil
}
