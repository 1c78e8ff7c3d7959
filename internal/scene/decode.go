package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/engine"
)

// Scene files are a YAML list of entries. Entries are discriminated by
// their keys: `body` makes an orbiter (a prefab name or an inline body),
// `moons`/`asteroids` make generators, and a bare `pos` makes a locus.
//
//	- body: sol
//	  children:
//	    - body: earth
//	      kinemat: {pos: [1.49598023e11, 0], vel: [0, -29780]}
//	    - asteroids: {total_mass: 3.0e21, min_orbit: 3.3e11, max_orbit: 4.8e11, std_dev: 1}

// Body is captured as a raw node so a prefab name (scalar) and an
// inline body (mapping) can share the key; an absent key leaves the
// node with zero Kind.
type rawEntry struct {
	Pos       *[2]float64 `yaml:"pos"`
	Body      yaml.Node   `yaml:"body"`
	Kinemat   *rawKinemat `yaml:"kinemat"`
	Moons     *Moons      `yaml:"moons"`
	Asteroids *Asteroids  `yaml:"asteroids"`
	Children  []rawEntry  `yaml:"children"`
}

type rawKinemat struct {
	Pos [2]float64 `yaml:"pos"`
	Vel [2]float64 `yaml:"vel"`
}

type rawBody struct {
	Mass      float64 `yaml:"mass"`
	Radius    float64 `yaml:"radius"`
	Name      string  `yaml:"name"`
	Color     uint32  `yaml:"color"`
	Outline   uint32  `yaml:"outline"`
	Immovable bool    `yaml:"immovable"`
}

// LoadFile reads a scene file and resolves it to seed orbiters.
func LoadFile(path string) ([]engine.Orbiter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return Load(data)
}

// Load decodes and resolves a YAML scene document.
func Load(data []byte) ([]engine.Orbiter, error) {
	nodes, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return Resolve(nodes), nil
}

// Decode parses a YAML scene document into a scene tree.
func Decode(data []byte) ([]Node, error) {
	var raw []rawEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return decodeEntries(raw, "scene")
}

func decodeEntries(raw []rawEntry, where string) ([]Node, error) {
	nodes := make([]Node, 0, len(raw))
	for i, e := range raw {
		n, err := e.node(fmt.Sprintf("%s[%d]", where, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (e rawEntry) node(where string) (Node, error) {
	switch {
	case e.Body.Kind != 0:
		body, err := decodeBody(e.Body, where)
		if err != nil {
			return nil, err
		}
		var kin engine.Kinematic
		if e.Kinemat != nil {
			kin = engine.Kinematic{
				Pos: mgl64.Vec2(e.Kinemat.Pos),
				Vel: mgl64.Vec2(e.Kinemat.Vel),
			}
		}
		children, err := decodeEntries(e.Children, where)
		if err != nil {
			return nil, err
		}
		return Orbit{Body: body, Kin: kin, Children: children}, nil

	case e.Moons != nil:
		return *e.Moons, nil

	case e.Asteroids != nil:
		return *e.Asteroids, nil

	case e.Pos != nil:
		children, err := decodeEntries(e.Children, where)
		if err != nil {
			return nil, err
		}
		return Locus{Pos: mgl64.Vec2(*e.Pos), Children: children}, nil

	default:
		return nil, fmt.Errorf("%s: entry is not a locus, orbiter, or generator", where)
	}
}

func decodeBody(n yaml.Node, where string) (engine.Body, error) {
	if n.Kind == yaml.ScalarNode {
		var name string
		if err := n.Decode(&name); err != nil {
			return engine.Body{}, fmt.Errorf("%s: %w", where, err)
		}
		body, ok := Prefab(name)
		if !ok {
			return engine.Body{}, fmt.Errorf("%s: no prefab body named %q", where, name)
		}
		return body, nil
	}

	var raw rawBody
	if err := n.Decode(&raw); err != nil {
		return engine.Body{}, fmt.Errorf("%s: %w", where, err)
	}
	if raw.Mass <= 0 || raw.Radius <= 0 {
		return engine.Body{}, fmt.Errorf("%s: body %q needs positive mass and radius", where, raw.Name)
	}
	return engine.Body{
		Mass:      raw.Mass,
		Radius:    raw.Radius,
		Name:      raw.Name,
		Color:     raw.Color,
		Outline:   raw.Outline,
		Immovable: raw.Immovable,
	}, nil
}
