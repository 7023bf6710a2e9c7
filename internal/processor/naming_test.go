package processor

import (
	"reflect"
	"testing"
)

func TestOutputName(t *testing.T) {
	prefixed := DefaultOptions()
	prefixed.RenameMode = PrefixIndex
	prefixed.Prefix = "trip"

	cases := []struct {
		job  Job
		want string
	}{
		{Job{InputPath: "/in/A.jpg", Options: DefaultOptions()}, "A.webp"},
		{Job{InputPath: "/in/scan.final.TIFF", Options: DefaultOptions()}, "scan.final.webp"},
		{Job{InputPath: "/in/noext", Options: DefaultOptions()}, "noext.webp"},
		{Job{InputPath: "/in/A.jpg", Index: 1, Options: prefixed}, "trip_1.webp"},
		{Job{InputPath: "/in/B.png", Index: 12, Options: prefixed}, "trip_12.webp"},
	}

	for _, tc := range cases {
		if got := OutputName(tc.job); got != tc.want {
			t.Fatalf("OutputName(%s) = %s, want %s", tc.job.InputPath, got, tc.want)
		}
	}
}

func TestNewJobsIndexesFromOne(t *testing.T) {
	opts := DefaultOptions()
	jobs := NewJobs([]string{"c.png", "a.png", "b.png"}, "/out", opts)
	for i, job := range jobs {
		if job.Index != i+1 || job.OutputDir != "/out" {
			t.Fatalf("job %d = %+v", i, job)
		}
	}
	if jobs[0].InputPath != "c.png" || jobs[2].InputPath != "b.png" {
		t.Fatalf("submission order not preserved: %+v", jobs)
	}
}

func TestCollisions(t *testing.T) {
	jobs := NewJobs([]string{"/a/photo.jpg", "/b/photo.png", "/c/other.bmp", "/d/photo.tiff"}, "/out", DefaultOptions())
	got := Collisions(jobs)
	want := []Collision{{OutputName: "photo.webp", Inputs: []string{"/a/photo.jpg", "/b/photo.png", "/d/photo.tiff"}}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Collisions = %+v, want %+v", got, want)
	}

	prefixed := DefaultOptions()
	prefixed.RenameMode = PrefixIndex
	if got := Collisions(NewJobs([]string{"/a/x.jpg", "/b/x.jpg"}, "/out", prefixed)); len(got) != 0 {
		t.Fatalf("prefix naming should not collide: %+v", got)
	}
}
