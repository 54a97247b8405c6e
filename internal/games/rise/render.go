package rise

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/rise/internal/config"
	"github.com/vovakirdan/rise/internal/core"
)

// Visual characters for rendering
const (
	PlatformChar    = '='
	BaseChar        = '#'
	SpikeChar       = '^'
	CannonLeftChar  = '>'
	CannonRightChar = '<'
	ProjectileChar  = '*'
	PlayerChar      = '█'
	SlowedChar      = '▒'
)

// Renderer scales a snapshot of the world onto a character screen.
type Renderer struct {
	field      config.FieldConfig
	playerSize float64
	spikeH     float64
	cannonW    float64
}

// NewRenderer creates a renderer for cfg.
func NewRenderer(cfg config.RiseConfig) *Renderer {
	return &Renderer{
		field:      cfg.Field,
		playerSize: cfg.Player.Size,
		spikeH:     cfg.Hazards.SpikeHeight,
		cannonW:    cfg.Hazards.CannonWidth,
	}
}

type scaler struct {
	sx, sy float64
}

func (s scaler) x(v float64) int { return int(math.Floor(v * s.sx)) }
func (s scaler) y(v float64) int { return int(math.Floor(v * s.sy)) }

// span returns the cell range [from, to) covered by a world interval, at least one cell wide.
func (s scaler) span(from, width, scale float64) (int, int) {
	a := int(math.Floor(from * scale))
	b := int(math.Ceil((from + width) * scale))
	if b <= a {
		b = a + 1
	}
	return a, b
}

// Render draws snap onto dst. Row 0 is the HUD.
func (r *Renderer) Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() < 2 {
		return
	}
	sc := scaler{
		sx: float64(dst.Width()) / r.field.Width,
		sy: float64(dst.Height()-1) / r.field.Height,
	}
	off := 1 // HUD row

	for _, p := range snap.Platforms {
		glyph, color := PlatformChar, core.ColorGray
		if p.Base {
			glyph, color = BaseChar, core.ColorBrown
		}
		x0, x1 := sc.span(p.X, p.Width, sc.sx)
		y := sc.y(p.Y) + off
		for x := x0; x < x1; x++ {
			dst.Set(x, y, glyph, color)
		}
		for _, s := range p.Spikes {
			sx0, sx1 := sc.span(p.X+s.X, s.Width, sc.sx)
			for x := sx0; x < sx1; x++ {
				dst.Set(x, sc.y(p.Y-r.spikeH)+off, SpikeChar, core.ColorCrimson)
			}
		}
		for _, c := range p.Cannons {
			glyph := CannonLeftChar
			if c.Side == SideRight {
				glyph = CannonRightChar
			}
			dst.Set(sc.x(p.X+c.X+r.cannonW/2), sc.y(c.Y)+off, glyph, core.ColorWhite)
		}
	}

	for _, pr := range snap.Projectiles {
		dst.Set(sc.x(pr.X), sc.y(pr.Y)+off, ProjectileChar, core.ColorYellow)
	}

	for _, p := range snap.Players {
		glyph := PlayerChar
		if p.Slowed(snap.Elapsed) {
			glyph = SlowedChar
		}
		x0, x1 := sc.span(p.X, r.playerSize, sc.sx)
		y0, y1 := sc.span(p.Y, r.playerSize, sc.sy)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				dst.Set(x, y+off, glyph, p.Color)
			}
		}
	}

	r.drawHUD(dst, snap)

	if snap.Result != nil {
		drawResult(dst, *snap.Result)
	}
}

// drawResult draws the result in a framed panel in the middle of the field.
func drawResult(dst *core.Screen, res Result) {
	title := " " + res.Text + " "
	lasted := " Time lasted: " + FormatElapsed(res.Elapsed) + " "
	w := min(max(len([]rune(title)), len(lasted))+2, dst.Width())
	mid := dst.Height() / 2
	panel := core.NewRect(core.Clamp((dst.Width()-w)/2, 0, dst.Width()-w), mid-2, w, 5)

	dst.FillRect(panel, ' ', core.ColorDefault)
	dst.DrawBox(panel, core.ColorGray)
	dst.DrawTextCentered(mid-1, title, core.ColorWhite)
	dst.DrawTextCentered(mid+1, lasted, core.ColorDefault)
}

func (r *Renderer) drawHUD(dst *core.Screen, snap Snapshot) {
	x := 1
	for _, p := range snap.Players {
		label := fmt.Sprintf("%s %s", p.ID, strings.ToUpper(p.Color.String()))
		if p.Slowed(snap.Elapsed) {
			label += " (slowed)"
		}
		dst.DrawText(x, 0, label, p.Color)
		x += len(label) + 2
	}
	status := fmt.Sprintf("Lv %d  %s", snap.Scroll.Level, FormatElapsed(snap.Elapsed))
	dst.DrawText(dst.Width()-len(status)-1, 0, status, core.ColorDefault)
}
