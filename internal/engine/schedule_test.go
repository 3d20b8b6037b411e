package engine

import (
	"testing"

	"github.com/piwi3910/ChipPlace/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_GeometricTemperatureNeverIncreases(t *testing.T) {
	s := model.DefaultPlaceSettings()
	s.MaxIterations = 1000
	sched := NewScheduler(s)

	prev := sched.Temperature()
	for sched.Running() {
		sched.Cool()
		assert.LessOrEqual(t, sched.Temperature(), prev)
		prev = sched.Temperature()
	}
}

func TestScheduler_StopsAtIterationBudget(t *testing.T) {
	s := model.DefaultPlaceSettings()
	s.MaxIterations = 50
	s.StopThreshold = 0 // geometric cooling never reaches zero on its own
	sched := NewScheduler(s)

	steps := 0
	for sched.Running() {
		sched.Cool()
		steps++
		require.LessOrEqual(t, steps, s.MaxIterations, "must terminate at the budget")
	}
	assert.Equal(t, s.MaxIterations, steps)
	assert.Equal(t, SchedulerStopped, sched.State())
}

func TestScheduler_StopsAtTemperatureThreshold(t *testing.T) {
	s := model.DefaultPlaceSettings()
	s.InitialTemperature = 10
	s.CoolingRate = 0.5
	s.StopThreshold = 1
	s.MaxIterations = 1000
	sched := NewScheduler(s)

	steps := 0
	for sched.Running() {
		sched.Cool()
		steps++
	}
	// 10 -> 5 -> 2.5 -> 1.25 -> 0.625: threshold reached after 4 steps
	assert.Equal(t, 4, steps)
	assert.LessOrEqual(t, sched.Temperature(), s.StopThreshold)
}

func TestScheduler_LinearReachesThresholdAtBudget(t *testing.T) {
	s := model.DefaultPlaceSettings()
	s.Schedule = model.ScheduleLinear
	s.InitialTemperature = 100
	s.StopThreshold = 0
	s.MaxIterations = 100
	sched := NewScheduler(s)

	prev := sched.Temperature()
	steps := 0
	for sched.Running() {
		sched.Cool()
		assert.LessOrEqual(t, sched.Temperature(), prev)
		prev = sched.Temperature()
		steps++
	}
	assert.LessOrEqual(t, steps, s.MaxIterations)
	assert.InDelta(t, 0.0, sched.Temperature(), 1e-9)
}

func TestScheduler_TerminatesForAnyValidConfiguration(t *testing.T) {
	configs := []model.PlaceSettings{
		func() model.PlaceSettings {
			s := model.DefaultPlaceSettings()
			s.MaxIterations = 1
			return s
		}(),
		func() model.PlaceSettings {
			s := model.DefaultPlaceSettings()
			s.CoolingRate = 0.999999
			s.MaxIterations = 10000
			return s
		}(),
		func() model.PlaceSettings {
			s := model.DefaultPlaceSettings()
			s.Schedule = model.ScheduleLinear
			s.MaxIterations = 333
			return s
		}(),
	}

	for _, s := range configs {
		require.NoError(t, s.Validate())
		sched := NewScheduler(s)
		steps := 0
		for sched.Running() {
			sched.Cool()
			steps++
			require.LessOrEqual(t, steps, s.MaxIterations)
		}
	}
}
