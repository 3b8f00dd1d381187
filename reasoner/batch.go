package reasoner

import "runtime"

// Job is one independent classification run: an axiom store already sized
// and populated for numConcepts concepts and numRoles roles.
type Job struct {
	Store       *AxiomStore
	NumConcepts int
	NumRoles    int
}

// Result pairs a Job's saturated contexts with its driver stats.
type Result struct {
	Contexts []Context
	Stats    Stats
}

// SaturateBatch runs Saturate over independent jobs concurrently, bounded
// to workers goroutines (runtime.NumCPU() if workers <= 0). Each job's
// axiom store is read-only and owned by that job alone, so — per §5's
// shared-resource policy — no synchronization beyond the worker pool's own
// dispatch is needed: every Saturate call touches only its own contexts.
func SaturateBatch(jobs []Job, workers int) []Result {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	indices := make(chan int)

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range indices {
				contexts, stats := Saturate(jobs[i].Store, jobs[i].NumConcepts, jobs[i].NumRoles)
				results[i] = Result{Contexts: contexts, Stats: stats}
			}
			done <- struct{}{}
		}()
	}

	for i := range jobs {
		indices <- i
	}
	close(indices)

	for w := 0; w < workers; w++ {
		<-done
	}

	return results
}
