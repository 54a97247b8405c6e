package rise

import (
	"fmt"

	"github.com/vovakirdan/rise/internal/config"
)

// Generator builds the platform ladder and extends it upward as platforms scroll away.
type Generator struct {
	field   config.FieldConfig
	cfg     config.GeneratorConfig
	hazards *HazardFactory
	rng     Source
	rows    int // Rows generated so far; the next row gets this index
}

// NewGenerator creates a generator. All randomness, including hazards, comes from rng.
func NewGenerator(cfg config.RiseConfig, rng Source) *Generator {
	return &Generator{
		field:   cfg.Field,
		cfg:     cfg.Generator,
		hazards: NewHazardFactory(cfg.Hazards, rng),
		rng:     rng,
	}
}

// BasePlatform returns the full-width floor players spawn on. It never has hazards.
func (g *Generator) BasePlatform() Platform {
	return Platform{
		X:     0,
		Y:     g.baseY(),
		Width: g.field.Width,
		Base:  true,
	}
}

func (g *Generator) baseY() float64 {
	return g.field.Height - g.cfg.BaseOffset
}

// CreateInitialField returns the base platform plus rows above it until the set
// holds at least count platforms. Row numbering restarts at zero.
func (g *Generator) CreateInitialField(count int) []Platform {
	g.rows = 0
	platforms := []Platform{g.BasePlatform()}
	return g.TopUp(platforms, count)
}

// TopUp appends rows above the current highest platform until len >= floor.
// The highest platform is looked up again for every row, so several rows stack
// correctly within one call. A set already at the floor is returned unchanged.
func (g *Generator) TopUp(platforms []Platform, floor int) []Platform {
	for len(platforms) < floor {
		row := g.Row(g.nextRowY(platforms))
		if len(row) == 0 {
			panic(fmt.Sprintf("rise: generator produced an empty row (min_per_row=%d)", g.cfg.MinPerRow))
		}
		platforms = append(platforms, row...)
	}
	if len(platforms) < floor {
		panic(fmt.Sprintf("rise: platform set below floor after top-up: %d < %d", len(platforms), floor))
	}
	return platforms
}

// nextRowY returns the Y for a new row: one spacing above the highest non-base
// platform, or above the base when nothing else is left.
func (g *Generator) nextRowY(platforms []Platform) float64 {
	minY, found := 0.0, false
	for _, p := range platforms {
		if p.Base {
			continue
		}
		if !found || p.Y < minY {
			minY, found = p.Y, true
		}
	}
	if !found {
		minY = g.baseY()
		for _, p := range platforms {
			if p.Base {
				minY = p.Y
				break
			}
		}
	}
	return minY - g.cfg.RowSpacing
}

// Row generates one row of platforms at height y, with hazards attached.
func (g *Generator) Row(y float64) []Platform {
	index := g.rows
	g.rows++

	n := intBetween(g.rng, g.cfg.MinPerRow, g.cfg.MaxPerRow)
	row := make([]Platform, 0, n)
	for range n {
		width := uniform(g.rng, g.cfg.MinWidth, min(g.cfg.MaxWidth, g.field.Width))
		p := Platform{
			X:     uniform(g.rng, 0, g.field.Width-width),
			Y:     y,
			Width: width,
		}
		p.Spikes = g.hazards.MaybeAttachSpikes(p)
		p.Cannons = g.hazards.MaybeAttachCannons(p, index)
		row = append(row, p)
	}
	return row
}

// RowsGenerated returns how many rows this generator has produced since the last
// CreateInitialField.
func (g *Generator) RowsGenerated() int {
	return g.rows
}
