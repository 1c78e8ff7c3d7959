package scene

import "github.com/san-kum/orrery/internal/engine"

// Prefab bodies, keyed by the names scene files may reference.
// Sol is the only immovable one; everything else orbits.
var prefabs = map[string]func() engine.Body{
	"sol":           Sol,
	"mercury":       Mercury,
	"venus":         Venus,
	"earth":         Earth,
	"luna":          Luna,
	"mars":          Mars,
	"phobos":        Phobos,
	"deimos":        Deimos,
	"jupiter":       Jupiter,
	"saturn":        Saturn,
	"uranus":        Uranus,
	"neptune":       Neptune,
	"halleys_comet": HalleysComet,
	"roshar":        Roshar,
}

// Prefab returns the named prefab body, or false if no such prefab
// exists.
func Prefab(name string) (engine.Body, bool) {
	fn, ok := prefabs[name]
	if !ok {
		return engine.Body{}, false
	}
	return fn(), true
}

// Sol returns our Sun. Will not move.
func Sol() engine.Body {
	return engine.Body{
		Mass:      1.9884e30,
		Radius:    695_700_000,
		Name:      "Sol",
		Color:     0xffdf22,
		Outline:   0xe87513,
		Immovable: true,
	}
}

// Mercury's orbit will be a little off without relativistic correction.
func Mercury() engine.Body {
	return engine.Body{
		Mass:    3.3011e23,
		Radius:  1_439_700,
		Name:    "Mercury",
		Color:   0xa79ea1,
		Outline: 0x737375,
	}
}

func Venus() engine.Body {
	return engine.Body{
		Mass:    4.8675e24,
		Radius:  6_051_800,
		Name:    "Venus",
		Color:   0xfcd172,
		Outline: 0xaf5a23,
	}
}

func Earth() engine.Body {
	return engine.Body{
		Mass:    5.97237e24,
		Radius:  6_371_000,
		Name:    "Earth",
		Color:   0x3669ff,
		Outline: 0x56ff2d,
	}
}

func Luna() engine.Body {
	return engine.Body{
		Mass:    7.342e22,
		Radius:  1_737_400,
		Name:    "Luna",
		Color:   0x3c3a38,
		Outline: 0xadaca9,
	}
}

func Mars() engine.Body {
	return engine.Body{
		Mass:    6.4171e23,
		Radius:  3_398_500,
		Name:    "Mars",
		Color:   0xff5c26,
		Outline: 0xc9af9e,
	}
}

func Phobos() engine.Body { return Moon(1.08e16, 11_100, "Phobos") }
func Deimos() engine.Body { return Moon(1.5e15, 6_300, "Deimos") }

func Jupiter() engine.Body {
	return engine.Body{
		Mass:    1.8982e27,
		Radius:  69_911_000,
		Name:    "Jupiter",
		Color:   0x977569,
		Outline: 0x8b5b45,
	}
}

func Saturn() engine.Body {
	return engine.Body{
		Mass:    5.6834e26,
		Radius:  58_232_000,
		Name:    "Saturn",
		Color:   0xf5b92f,
		Outline: 0x8c8109,
	}
}

func Uranus() engine.Body {
	return engine.Body{
		Mass:    8.681e25,
		Radius:  25_632_000,
		Name:    "Uranus",
		Color:   0x48faff,
		Outline: 0x62e4f9,
	}
}

func Neptune() engine.Body {
	return engine.Body{
		Mass:    1.02413e26,
		Radius:  24_622_000,
		Name:    "Neptune",
		Color:   0x6e8add,
		Outline: 0xc3ddff,
	}
}

func HalleysComet() engine.Body {
	return engine.Body{
		Mass:    2.2e14,
		Radius:  11_000,
		Name:    "Halley's Comet",
		Color:   0xddddff,
		Outline: 0x80b09b,
	}
}

// Roshar, from The Stormlight Archive. The Coppermind has values for it,
// somehow.
func Roshar() engine.Body {
	return engine.Body{
		Mass:    3.387e24,
		Radius:  5_633_000,
		Name:    "Roshar",
		Color:   0x015089,
		Outline: 0xc1d8e6,
	}
}

// Moon returns a generic moon.
func Moon(mass, radius float64, name string) engine.Body {
	return engine.Body{
		Mass:    mass,
		Radius:  radius,
		Name:    name,
		Color:   0xe8b374,
		Outline: 0x71401d,
	}
}
