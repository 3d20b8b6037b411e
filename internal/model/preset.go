package model

// PlacePreset is a named annealing configuration. Built-in presets ship
// with the application, custom ones are saved by the user.
type PlacePreset struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	IsBuiltIn   bool          `json:"is_built_in"`
	Settings    PlaceSettings `json:"settings"`
}

// BuiltinPresets returns the presets shipped with the application.
func BuiltinPresets() []PlacePreset {
	quick := DefaultPlaceSettings()
	quick.MaxIterations = 5000
	quick.CoolingRate = 0.99

	standard := DefaultPlaceSettings()

	thorough := DefaultPlaceSettings()
	thorough.MaxIterations = 200000
	thorough.CoolingRate = 0.999
	thorough.Restarts = 4

	compact := DefaultPlaceSettings()
	compact.OverlapWeight = 25.0
	compact.MovePolicy = MoveWindow

	return []PlacePreset{
		{
			Name:        "Quick",
			Description: "Fast preview run with aggressive cooling",
			IsBuiltIn:   true,
			Settings:    quick,
		},
		{
			Name:        "Standard",
			Description: "Balanced defaults for most netlists",
			IsBuiltIn:   true,
			Settings:    standard,
		},
		{
			Name:        "Thorough",
			Description: "Slow cooling with parallel restarts for best quality",
			IsBuiltIn:   true,
			Settings:    thorough,
		},
		{
			Name:        "Compact",
			Description: "Heavy overlap penalty and local moves for dense dies",
			IsBuiltIn:   true,
			Settings:    compact,
		},
	}
}

// PresetByName looks up a preset in the given list by name.
func PresetByName(presets []PlacePreset, name string) (PlacePreset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return PlacePreset{}, false
}
