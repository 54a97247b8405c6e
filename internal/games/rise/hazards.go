package rise

import (
	"time"

	"github.com/vovakirdan/rise/internal/config"
)

// HazardFactory decides which spikes and cannons a freshly generated platform carries.
type HazardFactory struct {
	cfg config.HazardConfig
	rng Source
}

// NewHazardFactory creates a hazard factory drawing from rng.
func NewHazardFactory(cfg config.HazardConfig, rng Source) *HazardFactory {
	return &HazardFactory{cfg: cfg, rng: rng}
}

// MaybeAttachSpikes returns the spikes for p, or nil when it gets none.
// Wider platforms get more spikes: one per SpikeEvery units, at least one.
func (h *HazardFactory) MaybeAttachSpikes(p Platform) []Spike {
	if p.Base || p.Width < h.cfg.SpikeWidth {
		return nil
	}
	if !chance(h.rng, h.cfg.SpikeChance) {
		return nil
	}

	count := max(1, int(p.Width/h.cfg.SpikeEvery))
	spikes := make([]Spike, 0, count)
	for range count {
		spikes = append(spikes, Spike{
			X:     uniform(h.rng, 0, p.Width-h.cfg.SpikeWidth),
			Width: h.cfg.SpikeWidth,
		})
	}
	return spikes
}

// MaybeAttachCannons returns the cannons for p, or nil when it gets none.
// Row is the generation index of the platform's row; the first row above the base
// (row 0) is never armed so players get a safe first jump.
func (h *HazardFactory) MaybeAttachCannons(p Platform, row int) []Cannon {
	if p.Base || row == 0 {
		return nil
	}
	footprint := h.cfg.CannonWidth + h.cfg.CannonInset
	if p.Width < footprint {
		return nil
	}
	if !chance(h.rng, h.cfg.CannonChance) {
		return nil
	}

	count := intBetween(h.rng, 1, 2)
	if p.Width < 2*footprint {
		count = 1
	}

	var sides []Side
	if count == 2 {
		sides = []Side{SideLeft, SideRight}
	} else {
		sides = []Side{Side(h.rng.Intn(2))}
	}

	cannons := make([]Cannon, 0, len(sides))
	for _, side := range sides {
		x := h.cfg.CannonInset
		if side == SideRight {
			x = p.Width - h.cfg.CannonInset - h.cfg.CannonWidth
		}
		spread := h.cfg.MaxInterval() - h.cfg.MinInterval()
		interval := h.cfg.MinInterval() + time.Duration(intBetween(h.rng, 0, int(spread/time.Millisecond)))*time.Millisecond
		cannons = append(cannons, Cannon{
			X:        x,
			Y:        p.Y - h.cfg.CannonHeight,
			Side:     side,
			Interval: interval,
		})
	}
	return cannons
}
