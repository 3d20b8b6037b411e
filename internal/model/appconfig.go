package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default annealing settings applied to new projects
	DefaultWirelengthWeight float64 `json:"default_wirelength_weight"`
	DefaultOverlapWeight    float64 `json:"default_overlap_weight"`
	DefaultBoundaryWeight   float64 `json:"default_boundary_weight"`
	DefaultInitialTemp      float64 `json:"default_initial_temp"`
	DefaultCoolingRate      float64 `json:"default_cooling_rate"`
	DefaultMaxIterations    int     `json:"default_max_iterations"`
	DefaultSchedule         string  `json:"default_schedule"`
	DefaultMovePolicy       string  `json:"default_move_policy"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	HistoryLimit   int      `json:"history_limit"` // run records kept, 0 = default
	Theme          string   `json:"theme"`         // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with defaults matching
// DefaultPlaceSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultPlaceSettings()
	return AppConfig{
		DefaultWirelengthWeight: defaults.WirelengthWeight,
		DefaultOverlapWeight:    defaults.OverlapWeight,
		DefaultBoundaryWeight:   defaults.BoundaryWeight,
		DefaultInitialTemp:      defaults.InitialTemperature,
		DefaultCoolingRate:      defaults.CoolingRate,
		DefaultMaxIterations:    defaults.MaxIterations,
		DefaultSchedule:         string(defaults.Schedule),
		DefaultMovePolicy:       string(defaults.MovePolicy),
		RecentProjects:          []string{},
		HistoryLimit:            100,
		Theme:                   "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// PlaceSettings struct. Used when creating a new project so it inherits
// the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PlaceSettings) {
	s.WirelengthWeight = c.DefaultWirelengthWeight
	s.OverlapWeight = c.DefaultOverlapWeight
	s.BoundaryWeight = c.DefaultBoundaryWeight
	s.InitialTemperature = c.DefaultInitialTemp
	s.CoolingRate = c.DefaultCoolingRate
	s.MaxIterations = c.DefaultMaxIterations
	if c.DefaultSchedule != "" {
		s.Schedule = Schedule(c.DefaultSchedule)
	}
	if c.DefaultMovePolicy != "" {
		s.MovePolicy = MovePolicy(c.DefaultMovePolicy)
	}
}

// AddRecentProject prepends a path to the recent-projects list, dropping
// duplicates and keeping at most ten entries.
func (c *AppConfig) AddRecentProject(path string) {
	filtered := make([]string, 0, len(c.RecentProjects)+1)
	filtered = append(filtered, path)
	for _, p := range c.RecentProjects {
		if p != path {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > 10 {
		filtered = filtered[:10]
	}
	c.RecentProjects = filtered
}
