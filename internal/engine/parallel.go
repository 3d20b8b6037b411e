package engine

import (
	"fmt"
	"sync"

	"github.com/piwi3910/ChipPlace/internal/model"
)

// RunParallel runs settings.Restarts independent annealing instances
// concurrently, one goroutine each, and returns the best result. Worker i
// is seeded with settings.Seed + i; the instances share no mutable state
// and combine only through the final min-by-cost reduction, so the outcome
// for a fixed seed is deterministic regardless of goroutine scheduling
// (ties go to the lowest worker index).
func RunParallel(nl model.Netlist, s model.PlaceSettings) (model.PlaceResult, error) {
	if err := nl.Validate(); err != nil {
		return model.PlaceResult{}, fmt.Errorf("invalid netlist: %w", err)
	}
	if err := s.Validate(); err != nil {
		return model.PlaceResult{}, fmt.Errorf("invalid settings: %w", err)
	}

	results := make([]model.PlaceResult, s.Restarts)
	var wg sync.WaitGroup
	for i := 0; i < s.Restarts; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			a := newAnnealerSeeded(nl, s, s.Seed+int64(worker))
			results[worker] = a.Run()
		}(i)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.Cost.Total < best.Cost.Total {
			best = r
		}
	}
	return best, nil
}
