package engine

import "github.com/piwi3910/ChipPlace/internal/model"

// SchedulerState is the state of the annealing schedule.
type SchedulerState int

const (
	SchedulerRunning SchedulerState = iota
	SchedulerStopped
)

// Scheduler drives the temperature decay and iteration count. The
// temperature is monotonically non-increasing; the run stops when it
// reaches the stop threshold or the iteration budget is exhausted,
// whichever comes first.
type Scheduler struct {
	settings    model.PlaceSettings
	temperature float64
	linearStep  float64
	iteration   int
}

// NewScheduler builds a scheduler from validated settings.
func NewScheduler(s model.PlaceSettings) *Scheduler {
	sc := &Scheduler{
		settings:    s,
		temperature: s.InitialTemperature,
	}
	if s.Schedule == model.ScheduleLinear {
		// Reach the stop threshold exactly at the iteration budget.
		sc.linearStep = (s.InitialTemperature - s.StopThreshold) / float64(s.MaxIterations)
	}
	return sc
}

// Temperature returns the current temperature.
func (sc *Scheduler) Temperature() float64 {
	return sc.temperature
}

// Iteration returns the number of completed outer iterations.
func (sc *Scheduler) Iteration() int {
	return sc.iteration
}

// State reports whether the schedule is still running.
func (sc *Scheduler) State() SchedulerState {
	if sc.temperature <= sc.settings.StopThreshold || sc.iteration >= sc.settings.MaxIterations {
		return SchedulerStopped
	}
	return SchedulerRunning
}

// Running is a convenience wrapper around State.
func (sc *Scheduler) Running() bool {
	return sc.State() == SchedulerRunning
}

// Cool advances the iteration counter and decays the temperature according
// to the configured schedule.
func (sc *Scheduler) Cool() {
	sc.iteration++
	switch sc.settings.Schedule {
	case model.ScheduleLinear:
		sc.temperature -= sc.linearStep
		if sc.temperature < sc.settings.StopThreshold {
			sc.temperature = sc.settings.StopThreshold
		}
	default:
		sc.temperature *= sc.settings.CoolingRate
	}
}
