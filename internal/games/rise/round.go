package rise

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/rise/internal/config"
	"github.com/vovakirdan/rise/internal/core"
)

// Round errors returned by Start.
var (
	ErrRoundInProgress = errors.New("rise: round already started")
	ErrDuplicateColor  = errors.New("rise: players must pick different colors")
	ErrNoPlayers       = errors.New("rise: at least one player is required")
	ErrTooManyPlayers  = errors.New("rise: more players than spawn points")
)

// Round is one match from spawn to the first fall. It owns all simulation state,
// including its random source, so rounds never share anything.
type Round struct {
	cfg  config.RiseConfig
	seed int64
	rng  Source

	resolver    *Resolver
	projectiles *ProjectileSystem
	scroller    *ScrollController
	generator   *Generator

	phase     Phase
	tick      uint64
	elapsed   time.Duration
	scroll    Scroll
	players   []Player
	platforms []Platform
	live      []Projectile
	result    Result
}

// NewRound creates an idle round. The random source is seeded once here and keeps
// running across Reset, so a sequence of rounds is reproducible from seed.
func NewRound(cfg config.RiseConfig, seed int64) (*Round, error) {
	return NewRoundWithSource(cfg, seed, NewSource(seed))
}

// NewRoundWithSource is NewRound with an explicit random source.
func NewRoundWithSource(cfg config.RiseConfig, seed int64, rng Source) (*Round, error) {
	resolver, err := NewResolver(cfg)
	if err != nil {
		return nil, fmt.Errorf("rise: new round: %w", err)
	}
	return &Round{
		cfg:         cfg,
		seed:        seed,
		rng:         rng,
		resolver:    resolver,
		projectiles: NewProjectileSystem(cfg),
		scroller:    NewScrollController(cfg),
		phase:       PhaseIdle,
	}, nil
}

// Start spawns one player per color and generates a fresh field.
// Player i gets color i, spawn point i and the default bindings of slot i.
func (r *Round) Start(colors []core.Color) error {
	if r.phase != PhaseIdle {
		return ErrRoundInProgress
	}
	if len(colors) == 0 {
		return ErrNoPlayers
	}
	if len(colors) > len(r.cfg.Player.SpawnX) {
		return fmt.Errorf("%w: %d players, %d spawn points", ErrTooManyPlayers, len(colors), len(r.cfg.Player.SpawnX))
	}
	seen := make(map[core.Color]bool, len(colors))
	for _, c := range colors {
		if seen[c] {
			return fmt.Errorf("%w: %s", ErrDuplicateColor, c)
		}
		seen[c] = true
	}

	r.players = make([]Player, len(colors))
	for i, c := range colors {
		r.players[i] = Player{
			ID:    core.PlayerID(i + 1),
			X:     r.cfg.Player.SpawnX[i],
			Y:     r.cfg.Player.SpawnY,
			Color: c,
			Keys:  BindingsFor(i),
		}
	}

	r.generator = NewGenerator(r.cfg, r.rng)
	r.platforms = r.generator.CreateInitialField(r.cfg.Generator.InitialCount)
	r.live = nil
	r.scroll = r.scroller.Start()
	r.tick = 0
	r.elapsed = 0
	r.result = Result{}
	r.phase = PhaseRunning
	return nil
}

// Step runs one tick at round clock reading now. It does nothing unless the round is running.
// Order: scroll, player physics, projectiles, platform top-up, termination.
func (r *Round) Step(in core.MultiInputFrame, now time.Duration) {
	if r.phase != PhaseRunning {
		return
	}
	r.tick++
	r.elapsed = now

	r.scroll = r.scroller.Advance(r.scroll, now)
	r.platforms = r.scroller.Sweep(r.platforms, r.scroll.Speed)

	for i, p := range r.players {
		r.players[i] = r.resolver.Step(p, in.Player(p.ID), r.platforms, now)
	}

	r.platforms, r.live = r.projectiles.Tick(r.platforms, r.live, r.scroll.Speed, now)
	r.live = r.projectiles.ResolveHits(r.players, r.live, now)

	r.platforms = r.generator.TopUp(r.platforms, r.cfg.Generator.Floor)

	limit := r.cfg.Field.Height + r.cfg.Round.FallMargin
	for _, p := range r.players {
		if p.Y > limit {
			r.finish()
			return
		}
	}
}

func (r *Round) finish() {
	r.phase = PhaseOver
	r.scroll = r.scroll.Stop()
	r.result = DecideWinner(r.players, r.elapsed)
}

// Reset discards all simulation state and returns to idle.
func (r *Round) Reset() {
	r.phase = PhaseIdle
	r.tick = 0
	r.elapsed = 0
	r.scroll = Scroll{}
	r.players = nil
	r.platforms = nil
	r.live = nil
	r.generator = nil
	r.result = Result{}
}

// Phase returns the current lifecycle state.
func (r *Round) Phase() Phase { return r.phase }

// Seed returns the seed the round's random source was created with.
func (r *Round) Seed() int64 { return r.seed }

// Config returns the configuration the round runs with.
func (r *Round) Config() config.RiseConfig { return r.cfg }

// Resolver returns the physics resolver, for speed and gravity readouts.
func (r *Round) Resolver() *Resolver { return r.resolver }

// Tick returns the number of steps run since Start.
func (r *Round) Tick() uint64 { return r.tick }

// Elapsed returns the round clock reading of the last step.
func (r *Round) Elapsed() time.Duration { return r.elapsed }

// Scroll returns the current scroll state.
func (r *Round) Scroll() Scroll { return r.scroll }

// Players returns the live players. The slice must not be modified.
func (r *Round) Players() []Player { return r.players }

// Platforms returns the live platform set. The slice must not be modified.
func (r *Round) Platforms() []Platform { return r.platforms }

// Projectiles returns the live projectiles. The slice must not be modified.
func (r *Round) Projectiles() []Projectile { return r.live }

// Result returns the outcome once the round is over.
func (r *Round) Result() (Result, bool) {
	return r.result, r.phase == PhaseOver
}
