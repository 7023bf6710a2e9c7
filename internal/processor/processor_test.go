package processor

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCollect(t *testing.T, ctx context.Context, paths []string, outDir string, opts Options) (BatchRun, []ProgressUpdate, error) {
	t.Helper()

	updates := make(chan ProgressUpdate)
	var got []ProgressUpdate
	done := make(chan struct{})
	go func() {
		defer close(done)
		for u := range updates {
			got = append(got, u)
		}
	}()

	run, err := Run(ctx, paths, outDir, opts, updates)
	close(updates)
	<-done
	return run, got, err
}

func TestRunKeepOriginalScenario(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	a := writeImage(t, dir, "A.jpg", solid(16, 12, color.NRGBA{R: 255, A: 255}))
	b := writeImage(t, dir, "B.png", solid(9, 9, color.NRGBA{G: 255, A: 255}))

	run, updates, err := runCollect(t, context.Background(), []string{a, b}, out, DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Total != 2 || run.Completed != 2 || len(run.Results) != 2 || len(updates) != 2 {
		t.Fatalf("unexpected counts: %+v, %d updates", run, len(updates))
	}
	if run.Succeeded() != 2 || run.Failed() != 0 {
		t.Fatalf("expected two successes, got %d/%d", run.Succeeded(), run.Failed())
	}
	if run.ID == "" {
		t.Fatalf("run id should be set")
	}

	for _, name := range []string{"A.webp", "B.webp"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestRunPrefixIndexFollowsSubmissionOrder(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	var paths []string
	for i := 0; i < 7; i++ {
		// Varying sizes so workers finish out of order.
		size := 4 + (7-i)*20
		paths = append(paths, writeImage(t, dir, fmt.Sprintf("src%d.png", i), solid(size, size, color.NRGBA{B: 200, A: 255})))
	}

	opts := DefaultOptions()
	opts.RenameMode = PrefixIndex
	opts.Prefix = "image"
	opts.Workers = 3

	run, _, err := runCollect(t, context.Background(), paths, out, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, res := range run.Results {
		if !res.OK() {
			t.Fatalf("unexpected failure: %v", res.Err)
		}
		if paths[res.Index-1] != res.InputPath {
			t.Fatalf("index %d maps to %s, want %s", res.Index, res.InputPath, paths[res.Index-1])
		}
		want := fmt.Sprintf("image_%d.webp", res.Index)
		if filepath.Base(res.OutputPath) != want {
			t.Fatalf("input %s written as %s, want %s", res.InputPath, filepath.Base(res.OutputPath), want)
		}
	}
	for i := 1; i <= 7; i++ {
		if _, err := os.Stat(filepath.Join(out, fmt.Sprintf("image_%d.webp", i))); err != nil {
			t.Fatalf("missing image_%d.webp: %v", i, err)
		}
	}
}

func TestRunProgressIsMonotonicAndEndsAt100(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 9; i++ {
		paths = append(paths, writeImage(t, dir, fmt.Sprintf("p%d.png", i), solid(6, 6, color.NRGBA{R: uint8(i * 20), A: 255})))
	}
	// A failing item still counts toward progress.
	paths = append(paths, filepath.Join(dir, "missing.png"))

	_, updates, err := runCollect(t, context.Background(), paths, t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(updates) != len(paths) {
		t.Fatalf("got %d updates, want %d", len(updates), len(paths))
	}

	last := -1.0
	for i, u := range updates {
		if u.Completed != i+1 || u.Total != len(paths) {
			t.Fatalf("update %d = %+v", i, u)
		}
		if u.Percent() < last {
			t.Fatalf("progress went backwards: %v after %v", u.Percent(), last)
		}
		last = u.Percent()
	}
	if last != 100 {
		t.Fatalf("final progress = %v, want 100", last)
	}
}

func TestRunFailuresDoNotAbortSiblings(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	good1 := writeImage(t, dir, "g1.png", solid(5, 5, color.NRGBA{A: 255}))
	bad := filepath.Join(dir, "broken.jpg")
	if err := os.WriteFile(bad, []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	good2 := writeImage(t, dir, "g2.bmp", solid(5, 5, color.NRGBA{R: 90, A: 255}))

	run, _, err := runCollect(t, context.Background(), []string{good1, bad, good2}, out, DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Succeeded() != 2 || run.Failed() != 1 {
		t.Fatalf("succeeded=%d failed=%d, want 2/1", run.Succeeded(), run.Failed())
	}
	for _, res := range run.Results {
		if !res.OK() && res.InputPath != bad {
			t.Fatalf("unexpected failure for %s: %v", res.InputPath, res.Err)
		}
	}
}

func TestRunPreconditions(t *testing.T) {
	dir := t.TempDir()
	src := writeImage(t, dir, "x.png", solid(3, 3, color.NRGBA{A: 255}))
	notDir := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(notDir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	negative, err := ParseThickness("-5")
	if err != nil {
		t.Fatalf("ParseThickness(-5): %v", err)
	}

	cases := []struct {
		name   string
		paths  []string
		outDir string
		opts   func(*Options)
		code   string
	}{
		{"no files", nil, dir, nil, ErrCodeNoFiles},
		{"empty output dir", []string{src}, "", nil, ErrCodeNoOutputDir},
		{"missing output dir", []string{src}, filepath.Join(dir, "missing"), nil, ErrCodeNoOutputDir},
		{"output is a file", []string{src}, notDir, nil, ErrCodeNoOutputDir},
		{"negative thickness frame off", []string{src}, dir, func(o *Options) { o.Frame.Thickness = negative }, ErrCodeInvalidInput},
		{"negative thickness frame on", []string{src}, dir, func(o *Options) { o.Frame.Enabled = true; o.Frame.Thickness = negative }, ErrCodeInvalidInput},
		{"empty prefix", []string{src}, dir, func(o *Options) { o.RenameMode = PrefixIndex; o.Prefix = " " }, ErrCodeInvalidInput},
		{"bad color", []string{src}, dir, func(o *Options) { o.Frame.Enabled = true; o.Frame.Color = "#12" }, ErrCodeInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := tc.outDir
			before := listDir(t, dir)

			opts := DefaultOptions()
			if tc.opts != nil {
				tc.opts(&opts)
			}
			updates := make(chan ProgressUpdate, 4)
			run, err := Run(context.Background(), tc.paths, out, opts, updates)
			if err == nil {
				t.Fatalf("expected precondition error")
			}
			if got := Code(err); got != tc.code {
				t.Fatalf("code = %q, want %q (%v)", got, tc.code, err)
			}
			if len(updates) != 0 || run.Total != 0 {
				t.Fatalf("no job should run on precondition failure")
			}
			if after := listDir(t, dir); strings.Join(after, ",") != strings.Join(before, ",") {
				t.Fatalf("files written on precondition failure: %v -> %v", before, after)
			}
		})
	}
}

func TestRunCancelledReportsEveryJob(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	var paths []string
	for i := 0; i < 5; i++ {
		paths = append(paths, writeImage(t, dir, fmt.Sprintf("c%d.png", i), solid(4, 4, color.NRGBA{A: 255})))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run, updates, err := runCollect(t, ctx, paths, out, DefaultOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Completed != 5 || len(updates) != 5 || updates[4].Percent() != 100 {
		t.Fatalf("every job must yield one result: completed=%d updates=%d", run.Completed, len(updates))
	}
	for _, res := range run.Results {
		if res.OK() || !strings.Contains(res.Err.Error(), "not started") {
			t.Fatalf("expected not-started failure, got %+v", res)
		}
	}
	if entries := listDir(t, out); len(entries) != 0 {
		t.Fatalf("cancelled batch wrote files: %v", entries)
	}
}

func TestPoolSize(t *testing.T) {
	if got := poolSize(4, 2); got != 2 {
		t.Fatalf("poolSize(4,2) = %d", got)
	}
	if got := poolSize(2, 10); got != 2 {
		t.Fatalf("poolSize(2,10) = %d", got)
	}
	if got := poolSize(0, 1); got != 1 {
		t.Fatalf("poolSize(0,1) = %d", got)
	}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
