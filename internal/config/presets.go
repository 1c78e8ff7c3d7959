package config

import "slices"

// Presets bundle a scene with step sizes that suit its scale.
var Presets = map[string]*Config{
	"ours": {
		Scene: "ours", Dt: 3600, Days: 365,
		MaxPullDistance: DefaultMaxPullDistance,
		SaveEvery:       DefaultSaveEvery, HistoryCap: DefaultHistoryCap,
		FrameRate: DefaultFrameRate,
	},
	"collisions": {
		Scene: "collisions", Dt: 600, Days: 40,
		MaxPullDistance: DefaultMaxPullDistance,
		SaveEvery:       DefaultSaveEvery, HistoryCap: DefaultHistoryCap,
		FrameRate: DefaultFrameRate,
	},
	"earth-luna": {
		Scene: "earth-luna", Dt: 60, Days: 28,
		MaxPullDistance: DefaultMaxPullDistance,
		SaveEvery:       60, HistoryCap: DefaultHistoryCap,
		FrameRate: DefaultFrameRate,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
