// Package report renders a sort result for humans.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Summary is the machine-readable form of a sort result.
type Summary struct {
	Values      []int32 `json:"values"`
	Comparisons int64   `json:"comparisons"`
	Algorithm   string  `json:"algorithm"`
	Seeded      bool    `json:"seeded,omitempty"`
	RunID       string  `json:"run_id,omitempty"`
}

// WriteText prints each value on its own line followed by
// "Comparisons made: <count>.".
func WriteText(w io.Writer, values []int32, comparisons int64) error {
	bw := bufio.NewWriter(w)
	for _, v := range values {
		bw.WriteString(strconv.FormatInt(int64(v), 10))
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "Comparisons made: %d.\n", comparisons)
	return bw.Flush()
}
