package processor

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSummaryTruncatesAfterTen(t *testing.T) {
	run := BatchRun{}
	for i := 1; i <= 12; i++ {
		run.Results = append(run.Results, Result{InputPath: fmt.Sprintf("/in/%d.png", i), OutputPath: fmt.Sprintf("/out/%d.webp", i)})
	}

	lines := run.Summary(SummaryLimit)
	if len(lines) != 11 {
		t.Fatalf("got %d lines, want 11", len(lines))
	}
	if lines[0] != "Done: /out/1.webp" || lines[9] != "Done: /out/10.webp" {
		t.Fatalf("unexpected lines: %v", lines)
	}
	if lines[10] != "... (2 more)" {
		t.Fatalf("truncation marker = %q", lines[10])
	}
}

func TestSummaryShort(t *testing.T) {
	run := BatchRun{Results: []Result{
		{InputPath: "/in/a.png", OutputPath: "/out/a.webp"},
		{InputPath: "/in/b.png", Err: errors.New("boom")},
	}}

	text := run.SummaryText()
	if text != "Done: /out/a.webp\nFailed: /in/b.png - boom" {
		t.Fatalf("summary = %q", text)
	}
	if strings.Contains(text, "more") {
		t.Fatalf("no truncation marker expected")
	}
	if run.Succeeded() != 1 || run.Failed() != 1 {
		t.Fatalf("counts = %d/%d", run.Succeeded(), run.Failed())
	}
}

func TestSummaryExactlyTen(t *testing.T) {
	run := BatchRun{}
	for i := 0; i < 10; i++ {
		run.Results = append(run.Results, Result{OutputPath: "x"})
	}
	if lines := run.Summary(SummaryLimit); len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
}
