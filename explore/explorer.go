// Package explore drives the engine over the successor graph. The
// engine itself is single-stepped and lock-free; parallelism lives
// here, which is legal because forked states never share mutable data.
package explore

import (
	"context"
	"runtime"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/javelin-vm/javelin/engine"
)

var log = commonlog.GetLogger("javelin.explore")

// Result summarizes one exploration.
type Result struct {
	// Exited holds the states that reached a program exit.
	Exited []*engine.State
	// DeadEnds counts states that produced no successors.
	DeadEnds int
	// Errors counts states whose processing failed structurally.
	Errors int
	// Steps counts processed states.
	Steps int
}

// Explorer explores paths breadth-first up to a step budget.
type Explorer struct {
	Engine *engine.Engine

	// MaxSteps caps the number of processed states; 0 means unlimited.
	MaxSteps int

	// Workers bounds concurrent Process calls; 0 means GOMAXPROCS.
	Workers int
}

// Run explores from the initial state until the frontier drains, the
// step budget runs out, or ctx is cancelled.
func (x *Explorer) Run(ctx context.Context, initial *engine.State) (*Result, error) {
	workers := x.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := &Result{}
	frontier := []*engine.State{initial}

	for len(frontier) > 0 {
		batch := frontier
		if x.MaxSteps > 0 {
			remaining := x.MaxSteps - res.Steps
			if remaining <= 0 {
				log.Noticef("step budget exhausted with %d states pending", len(frontier))
				break
			}
			if len(batch) > remaining {
				batch = batch[:remaining]
			}
		}
		frontier = frontier[len(batch):]

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, state := range batch {
			state := state
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				succ, err := x.Engine.Process(state)

				mu.Lock()
				defer mu.Unlock()
				res.Steps++
				if err != nil {
					log.Warningf("abandoning state %d at %s: %v", state.ID, state.Addr, err)
					res.Errors++
					return nil
				}
				if succ.Len() == 0 {
					res.DeadEnds++
					return nil
				}
				for _, s := range succ.All() {
					if s.Kind == engine.KindExit {
						res.Exited = append(res.Exited, s.State)
						continue
					}
					frontier = append(frontier, s.State)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return res, err
		}
	}
	return res, nil
}
