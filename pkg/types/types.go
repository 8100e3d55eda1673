package types

// Outcome is how a shrink run ended
type Outcome string

const (
	// OutcomeConverged means the final output is within the tolerance band
	OutcomeConverged Outcome = "converged"
	// OutcomeMaxIterationsReached means the iteration budget ran out and the last output was kept
	OutcomeMaxIterationsReached Outcome = "max-iterations-reached"
)

// Result describes a finished shrink run
type Result struct {
	OutputPath string
	OutputSize int64
	TargetSize int64 // target of the final iteration, after corrections
	Iterations int
	Outcome    Outcome
	Produced   []string // every file written, superseded ones included
}

// Superseded returns the produced files other than the final output.
func (r *Result) Superseded() []string {
	var out []string
	for _, path := range r.Produced {
		if path != r.OutputPath {
			out = append(out, path)
		}
	}
	return out
}
