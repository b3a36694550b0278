// Package layout assigns 2D positions to graph nodes with a fixed-step
// force simulation. The step count is fixed rather than convergence-tested
// so time-to-first-render stays bounded on large graphs, and the whole
// simulation is free of randomness: identical zero-initialized input always
// produces identical positions.
package layout

import (
	"math"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

// Config holds the force constants. The defaults were tuned by hand against
// mid-sized repositories; all of them are overridable from configuration.
type Config struct {
	Steps int `koanf:"steps" yaml:"steps"`

	Repulsion        float64 `koanf:"repulsion" yaml:"repulsion"`
	CollideStrength  float64 `koanf:"collide_strength" yaml:"collide_strength"`
	RadialStrength   float64 `koanf:"radial_strength" yaml:"radial_strength"`
	SectorStrength   float64 `koanf:"sector_strength" yaml:"sector_strength"`
	VelocityDecay    float64 `koanf:"velocity_decay" yaml:"velocity_decay"`
	HubInDegree      int     `koanf:"hub_in_degree" yaml:"hub_in_degree"`
	HubRadius        float64 `koanf:"hub_radius" yaml:"hub_radius"`
	DirectoryRadius  float64 `koanf:"directory_radius" yaml:"directory_radius"`
	FileRadius       float64 `koanf:"file_radius" yaml:"file_radius"`
	DependencyLength float64 `koanf:"dependency_length" yaml:"dependency_length"`
	ContainLength    float64 `koanf:"contain_length" yaml:"contain_length"`
}

// DefaultConfig returns the stock force constants.
func DefaultConfig() Config {
	return Config{
		Steps:            300,
		Repulsion:        900,
		CollideStrength:  0.7,
		RadialStrength:   0.06,
		SectorStrength:   0.10,
		VelocityDecay:    0.85,
		HubInDegree:      3,
		HubRadius:        90,
		DirectoryRadius:  220,
		FileRadius:       380,
		DependencyLength: 80,
		ContainLength:    160,
	}
}

// Link spring strengths: dependency edges pull hard toward a short target
// distance, containment edges weakly toward a long one.
const (
	dependencyStrength = 0.08
	containStrength    = 0.02
)

// Engine runs the simulation. OnStep, when set, is called once per step for
// progress reporting.
type Engine struct {
	cfg    Config
	OnStep func(step, total int)
}

// New returns an Engine with the given config. A zero step count falls back
// to the default; the other constants are taken as given, zero included.
func New(cfg Config) *Engine {
	if cfg.Steps <= 0 {
		cfg.Steps = DefaultConfig().Steps
	}
	return &Engine{cfg: cfg}
}

// body is the per-node simulation state.
type body struct {
	n            *graph.Node
	x, y, vx, vy float64
	fx, fy       float64
	disc         float64 // collision disc radius
	ring         float64 // target radius for the radial force
	pinned       bool    // root stays at the origin
	sector       int     // index into sectors, -1 when exempt
}

// Run assigns positions to every node in g. It never fails, never drops a
// node or edge, and never changes an id. Nodes with no edges settle under
// repulsion, collision and the radial force alone.
func (e *Engine) Run(g *graph.Graph) {
	if len(g.Nodes) == 0 {
		return
	}

	inDegree := g.DependencyInDegree()
	bodies := make([]*body, len(g.Nodes))
	index := make(map[string]*body, len(g.Nodes))
	for i, n := range g.Nodes {
		b := &body{n: n, x: n.X, y: n.Y, sector: -1}
		b.disc = discRadius(n)
		b.ring, b.pinned = e.targetRing(n, inDegree[n.ID])
		bodies[i] = b
		index[n.ID] = b
	}
	seed(bodies)

	sectors := buildSectors(g, e.cfg, inDegree, bodies)

	for step := 0; step < e.cfg.Steps; step++ {
		for _, b := range bodies {
			b.fx, b.fy = 0, 0
		}
		e.applyRepulsion(bodies)
		e.applyCollision(bodies)
		e.applyRadial(bodies)
		e.applyLinks(g, index)

		for _, b := range bodies {
			if b.pinned {
				b.vx, b.vy = 0, 0
				continue
			}
			b.vx = (b.vx + b.fx) * e.cfg.VelocityDecay
			b.vy = (b.vy + b.fy) * e.cfg.VelocityDecay
		}

		// Sector steering is a global pass over current positions, not a
		// pairwise force: it rotates each member toward its directory's
		// wedge by writing velocity directly.
		temperature := 1 - float64(step)/float64(e.cfg.Steps)
		e.applySectors(bodies, sectors, temperature)

		for _, b := range bodies {
			b.x += b.vx
			b.y += b.vy
		}

		if e.OnStep != nil {
			e.OnStep(step+1, e.cfg.Steps)
		}
	}

	for _, b := range bodies {
		b.n.X = b.x
		b.n.Y = b.y
	}
}

// seed places any node still at the origin on a golden-angle spiral keyed
// to its index, so a zero-initialized graph gets a deterministic start and
// no two bodies coincide.
func seed(bodies []*body) {
	const golden = 2.39996322972865332
	for i, b := range bodies {
		if b.x != 0 || b.y != 0 {
			continue
		}
		if b.n.Kind == graph.KindRoot {
			continue
		}
		angle := float64(i) * golden
		radius := 12 * math.Sqrt(float64(i)+1)
		b.x = radius * math.Cos(angle)
		b.y = radius * math.Sin(angle)
	}
}

// targetRing maps a node to its concentric role ring. Hubs — nodes whose
// incoming dependency count exceeds the threshold — are pulled to the hub
// ring regardless of kind, foregrounding heavily-depended-on files.
func (e *Engine) targetRing(n *graph.Node, inDegree int) (radius float64, pinned bool) {
	if n.Kind == graph.KindRoot {
		return 0, true
	}
	if inDegree > e.cfg.HubInDegree {
		return e.cfg.HubRadius, false
	}
	switch n.Kind {
	case graph.KindDirectory:
		return e.cfg.DirectoryRadius, false
	default:
		return e.cfg.FileRadius, false
	}
}

func discRadius(n *graph.Node) float64 {
	switch n.Kind {
	case graph.KindRoot:
		return 30
	case graph.KindDirectory:
		return 26
	case graph.KindSticky:
		return 24
	default:
		return 16 + math.Min(float64(n.Traffic), 8)
	}
}

func (e *Engine) applyRepulsion(bodies []*body) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			dx, dy := b.x-a.x, b.y-a.y
			d2 := dx*dx + dy*dy
			if d2 < 1e-6 {
				// Coincident bodies separate along a fixed axis keyed to
				// index order; no randomness.
				dx, dy, d2 = 0.1, 0.1*float64(j-i), 0.02
			}
			f := e.cfg.Repulsion / d2
			d := math.Sqrt(d2)
			ux, uy := dx/d, dy/d
			a.fx -= ux * f
			a.fy -= uy * f
			b.fx += ux * f
			b.fy += uy * f
		}
	}
}

func (e *Engine) applyCollision(bodies []*body) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			dx, dy := b.x-a.x, b.y-a.y
			d := math.Hypot(dx, dy)
			overlap := a.disc + b.disc - d
			if overlap <= 0 {
				continue
			}
			if d < 1e-6 {
				dx, dy, d = 0.1, 0.1*float64(j-i), 0.14
			}
			push := overlap * e.cfg.CollideStrength / 2
			ux, uy := dx/d, dy/d
			a.fx -= ux * push
			a.fy -= uy * push
			b.fx += ux * push
			b.fy += uy * push
		}
	}
}

func (e *Engine) applyRadial(bodies []*body) {
	for _, b := range bodies {
		if b.pinned {
			continue
		}
		r := math.Hypot(b.x, b.y)
		if r < 1e-6 {
			continue
		}
		f := (b.ring - r) * e.cfg.RadialStrength
		b.fx += b.x / r * f
		b.fy += b.y / r * f
	}
}

func (e *Engine) applyLinks(g *graph.Graph, index map[string]*body) {
	for _, edge := range g.Edges {
		a, b := index[edge.Source], index[edge.Target]
		if a == nil || b == nil {
			continue
		}
		var target, strength float64
		switch edge.Kind {
		case graph.EdgeDependency:
			target, strength = e.cfg.DependencyLength, dependencyStrength
		default:
			target, strength = e.cfg.ContainLength, containStrength
		}
		dx, dy := b.x-a.x, b.y-a.y
		d := math.Hypot(dx, dy)
		if d < 1e-6 {
			continue
		}
		f := (d - target) * strength
		ux, uy := dx/d, dy/d
		a.fx += ux * f
		a.fy += uy * f
		b.fx -= ux * f
		b.fy -= uy * f
	}
}
