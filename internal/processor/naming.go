package processor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputName computes the file name a job writes, without directory.
func OutputName(job Job) string {
	if job.Options.RenameMode == PrefixIndex {
		return fmt.Sprintf("%s_%d%s", job.Options.Prefix, job.Index, TargetExtension)
	}
	base := filepath.Base(job.InputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + TargetExtension
}

// Collision is an output name claimed by more than one input.
type Collision struct {
	OutputName string
	Inputs     []string
}

// Collisions lists output names shared by several jobs. The batch still runs
// and the last writer wins; callers use this to warn.
func Collisions(jobs []Job) []Collision {
	claims := make(map[string][]string)
	var order []string
	for _, job := range jobs {
		name := OutputName(job)
		if _, seen := claims[name]; !seen {
			order = append(order, name)
		}
		claims[name] = append(claims[name], job.InputPath)
	}

	var out []Collision
	for _, name := range order {
		if inputs := claims[name]; len(inputs) > 1 {
			out = append(out, Collision{OutputName: name, Inputs: inputs})
		}
	}
	return out
}

// NewJobs builds one job per path, indexed from 1 in submission order.
func NewJobs(paths []string, outputDir string, opts Options) []Job {
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		jobs[i] = Job{
			InputPath: p,
			OutputDir: outputDir,
			Index:     i + 1,
			Options:   opts,
		}
	}
	return jobs
}
