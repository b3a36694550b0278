package layout

import (
	"math"
	"sort"
	"strings"

	"github.com/codeatlas-dev/codeatlas/internal/graph"
)

// sector is one contiguous arc of the circle owned by a top-level
// directory.
type sector struct {
	mid float64 // arc midpoint angle, radians
}

// buildSectors partitions the full circle into arcs per top-level
// directory, sized proportionally to descendant file count, and tags each
// body with its sector. Root, hubs, stickies and files living directly at
// the repository root stay exempt (sector -1).
func buildSectors(g *graph.Graph, cfg Config, inDegree map[string]int, bodies []*body) []sector {
	counts := make(map[string]int)
	for _, n := range g.Nodes {
		if n.Kind == graph.KindFile {
			if top := topLevelDir(n.Path); top != "" {
				counts[top]++
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	names := make([]string, 0, len(counts))
	total := 0
	for name, c := range counts {
		names = append(names, name)
		total += c
	}
	sort.Strings(names)

	sectors := make([]sector, 0, len(names))
	byName := make(map[string]int, len(names))
	start := 0.0
	for _, name := range names {
		span := 2 * math.Pi * float64(counts[name]) / float64(total)
		byName[name] = len(sectors)
		sectors = append(sectors, sector{mid: start + span/2})
		start += span
	}

	for _, b := range bodies {
		n := b.n
		if n.Kind == graph.KindRoot || n.Kind == graph.KindSticky {
			continue
		}
		if inDegree[n.ID] > cfg.HubInDegree {
			continue
		}
		var top string
		if n.Kind == graph.KindDirectory {
			top = topLevelDir(n.Path + "/")
		} else {
			top = topLevelDir(n.Path)
		}
		if idx, ok := byName[top]; ok {
			b.sector = idx
		}
	}
	return sectors
}

// topLevelDir returns the first path segment of p, or "" when p sits at the
// repository root.
func topLevelDir(p string) string {
	i := strings.Index(p, "/")
	if i <= 0 {
		return ""
	}
	return p[:i]
}

// applySectors nudges each sector member tangentially toward its arc
// midpoint. The rate scales with the remaining simulation temperature and
// the node's current radius, so clusters rotate into their wedge early and
// the force fades out as the layout settles. Radius is left entirely to the
// radial force.
func (e *Engine) applySectors(bodies []*body, sectors []sector, temperature float64) {
	if len(sectors) == 0 || temperature <= 0 {
		return
	}
	for _, b := range bodies {
		if b.sector < 0 || b.pinned {
			continue
		}
		r := math.Hypot(b.x, b.y)
		if r < 1e-6 {
			continue
		}
		current := math.Atan2(b.y, b.x)
		delta := wrapAngle(sectors[b.sector].mid - current)
		turn := delta * e.cfg.SectorStrength * temperature
		// Tangential velocity for an angular change of turn at radius r.
		b.vx += -math.Sin(current) * turn * r
		b.vy += math.Cos(current) * turn * r
	}
}

// wrapAngle maps an angle difference into [-π, π] so nodes always take the
// short way around.
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
