package processor

import (
	"fmt"
	"strings"
)

// SummaryLimit is how many result lines the end-of-run notice shows.
const SummaryLimit = 10

// Summary returns the first limit result lines in completion order, followed
// by a truncation marker when more results exist.
func (b BatchRun) Summary(limit int) []string {
	if limit < 0 {
		limit = 0
	}
	n := len(b.Results)
	shown := n
	if shown > limit {
		shown = limit
	}

	lines := make([]string, 0, shown+1)
	for _, r := range b.Results[:shown] {
		lines = append(lines, r.Message())
	}
	if n > shown {
		lines = append(lines, fmt.Sprintf("... (%d more)", n-shown))
	}
	return lines
}

// SummaryText joins Summary(SummaryLimit) into one block.
func (b BatchRun) SummaryText() string {
	return strings.Join(b.Summary(SummaryLimit), "\n")
}
