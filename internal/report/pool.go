package report

import (
	"sync"

	"github.com/imkarma/pulse/internal/health"
	"github.com/imkarma/pulse/internal/ticket"
)

// Outcome is the result of rendering one sprint's report.
type Outcome struct {
	SprintID string
	Path     string
	Err      error
}

// WriteAll renders a report for every sprint in the snapshot, fanning
// the rendering out over a small worker pool. Results come back in
// sprint order regardless of completion order. The snapshot is
// read-only, so workers need no coordination beyond the work queue.
func WriteAll(st *ticket.Store, dir string, cfg health.Config, workers int) []Outcome {
	sprints := st.Sprints()
	if workers < 1 {
		workers = 1
	}
	if workers > len(sprints) {
		workers = len(sprints)
	}

	outcomes := make([]Outcome, len(sprints))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				id := sprints[i]
				path, err := Write(st, id, dir, cfg)
				outcomes[i] = Outcome{SprintID: id, Path: path, Err: err}
			}
		}()
	}

	for i := range sprints {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}
