// Package engine ties the snapshot store to the query, metric, and
// scoring layers behind a typed request surface. It owns the only
// mutation point in the system: the atomic snapshot swap on reload.
package engine

import (
	"fmt"
	"sync/atomic"

	"github.com/imkarma/pulse/internal/health"
	"github.com/imkarma/pulse/internal/ticket"
)

// Engine serves analytical requests against the current snapshot.
// Reads never lock: every request resolves the snapshot pointer once
// and computes against that version even if a reload lands mid-flight.
type Engine struct {
	snapshot atomic.Pointer[ticket.Store]
	health   health.Config
}

// New validates the records and builds an engine around the resulting
// snapshot.
func New(records []ticket.Ticket, healthCfg health.Config) (*Engine, error) {
	if err := healthCfg.Validate(); err != nil {
		return nil, fmt.Errorf("health config: %w", err)
	}
	st, err := ticket.Load(records)
	if err != nil {
		return nil, err
	}
	e := &Engine{health: healthCfg}
	e.snapshot.Store(st)
	return e, nil
}

// Reload validates a fresh record set and swaps it in atomically. A
// failed load leaves the previous snapshot serving.
func (e *Engine) Reload(records []ticket.Ticket) error {
	st, err := ticket.Load(records)
	if err != nil {
		return err
	}
	e.snapshot.Store(st)
	return nil
}

// Store returns the current snapshot. Callers hold the returned value
// for the whole computation to keep a consistent view across a reload.
func (e *Engine) Store() *ticket.Store {
	return e.snapshot.Load()
}

// HealthConfig returns the scoring policy the engine was built with.
func (e *Engine) HealthConfig() health.Config {
	return e.health
}

// Stats are the read-only liveness counters.
type Stats struct {
	TicketsLoaded int
	SprintsKnown  int
}

// Stats reports how much data the current snapshot holds.
func (e *Engine) Stats() Stats {
	st := e.Store()
	return Stats{TicketsLoaded: st.Len(), SprintsKnown: len(st.Sprints())}
}
