package breakout

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/brickwell/internal/config"
	"github.com/vovakirdan/brickwell/internal/core"
	"github.com/vovakirdan/brickwell/internal/sim"
)

// Visual characters for rendering
const (
	PaddleChar    = '='
	BallChar      = '●'
	BlockChar     = '█'
	WallBlockChar = '▒'
	MissileChar   = '^'
	TrailChar     = '¦'
	BorderVert    = '│'
	BorderHoriz   = '─'
	BorderTL      = '┌'
	BorderTR      = '┐'
)

// ShieldGlyphs are drawn across the bottom of the well, by shield level.
var ShieldGlyphs = [sim.MaxShieldLevel + 1]rune{' ', '-', '=', '≡'}

const (
	hudRows = 2

	// The score multiplier starts blinking this many frames before it runs out.
	blinkFrames = 60
	blinkPeriod = 6
)

// viewport maps world coordinates (y-up, origin at the well center) to
// screen cells. Each world unit is two columns wide and one row tall.
type viewport struct {
	w, h    float64 // well size plus one unit of frame on each side
	originX int
	originY int
}

func newViewport(cfg config.BrickwellConfig) viewport {
	return viewport{
		w: 2*cfg.Physics.WellHalfWidth + 2,
		h: 2*cfg.Physics.WellHalfHeight + 2,
	}
}

func (v viewport) cols() int {
	return int(math.Round(v.w*2)) + 1
}

func (v viewport) rows() int {
	return int(math.Round(v.h)) + 1
}

func (v viewport) minWidth() int {
	return v.cols()
}

// minHeight leaves room for the HUD above the field and the status line below.
func (v viewport) minHeight() int {
	return hudRows + v.rows() + 1
}

func (v viewport) statusRow() int {
	return v.originY + v.rows()
}

func (v viewport) cell(p core.Vector2) (int, int) {
	col := int(math.Round((v.w/2 + p.X) * 2))
	row := int(math.Round(v.h/2 - p.Y))
	return v.originX + col, v.originY + row
}

// box returns the cells covered by r, at least one cell in each direction.
func (v viewport) box(r core.Rect) core.Box {
	x1, y1 := v.cell(r.TopLeft())
	x2, y2 := v.cell(r.BottomRight())
	return core.Box{X: x1, Y: y1, W: max(x2-x1, 1), H: max(y2-y1, 1)}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.state == StateError {
		dst.DrawTextCentered(dst.Height()/2-1, "Cannot start game")
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		}
		return
	}

	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.view.minWidth(), g.view.minHeight())
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}

	g.view.originX = (dst.Width() - g.view.cols()) / 2
	g.view.originY = hudRows

	snap := g.level.Snapshot()
	g.renderHUD(dst, &snap)
	g.renderWell(dst, &snap)
	g.renderBlocks(dst, &snap)
	g.renderDrops(dst, &snap)
	g.renderMissiles(dst, &snap)
	g.renderPaddle(dst, &snap)
	g.renderBalls(dst, &snap)
	g.renderStatus(dst, &snap)
	g.renderOverlay(dst)
}

// renderHUD draws level, score and lives on the first row and the active
// buffs on the second.
func (g *Game) renderHUD(dst *core.Screen, snap *sim.Snapshot) {
	var levelText string
	if g.mode == ModeEndless {
		levelText = fmt.Sprintf("Level %d", snap.Level+1)
		if g.cycle > 0 {
			levelText += fmt.Sprintf(" (lap %d)", g.cycle+1)
		}
	} else {
		levelText = fmt.Sprintf("Level %d/%d", g.levelIndex+1, g.campaign.Len())
	}
	if snap.Name != "" {
		levelText += " " + snap.Name
	}
	dst.DrawText(1, 0, levelText)

	dst.DrawTextCentered(0, fmt.Sprintf("Score: %d", snap.Score))

	livesText := fmt.Sprintf("Lives: %d", snap.Lives)
	dst.DrawText(dst.Width()-utf8.RuneCountInString(livesText)-1, 0, livesText)

	effects := buffsText(snap)
	if effects == "" {
		dst.DrawHLine(0, 1, dst.Width(), BorderHoriz, core.ColorGray)
		return
	}
	dst.DrawTextColored(1, 1, effects, core.ColorYellow)
}

// buffsText lists the running buffs. The multiplier blinks while its timer
// is about to run out.
func buffsText(snap *sim.Snapshot) string {
	var parts []string
	if snap.Multiplier > 1 && !multiplierHidden(snap.Timers.ScoreMultiplier, snap.Frame) {
		parts = append(parts, fmt.Sprintf("Score x%d", snap.Multiplier))
	}
	if snap.SpeedTier != 0 {
		parts = append(parts, fmt.Sprintf("Speed x%.2f", snap.SpeedMultiplier))
	}
	if snap.MissileCount > 0 {
		parts = append(parts, fmt.Sprintf("Missiles %d", snap.MissileCount))
	}
	if snap.ShieldLevel > 0 {
		parts = append(parts, fmt.Sprintf("Shield %d", snap.ShieldLevel))
	}
	return strings.Join(parts, "  ")
}

func multiplierHidden(timer int, frame uint64) bool {
	if timer <= 0 || timer > blinkFrames {
		return false
	}
	return (frame/blinkPeriod)%2 == 1
}

// renderWell draws the side walls, the ceiling and the shield.
func (g *Game) renderWell(dst *core.Screen, snap *sim.Snapshot) {
	left, top := g.view.cell(snap.Well.TopLeft())
	right, bottom := g.view.cell(snap.Well.BottomRight())

	dst.DrawHLine(left+1, top, right-left-1, BorderHoriz, core.ColorGray)
	dst.SetColored(left, top, BorderTL, core.ColorGray)
	dst.SetColored(right, top, BorderTR, core.ColorGray)
	dst.DrawVLine(left, top+1, bottom-top, BorderVert, core.ColorGray)
	dst.DrawVLine(right, top+1, bottom-top, BorderVert, core.ColorGray)

	if snap.ShieldLevel > 0 {
		glyph := ShieldGlyphs[min(snap.ShieldLevel, sim.MaxShieldLevel)]
		dst.DrawHLine(left+1, bottom, right-left-1, glyph, core.ColorCyan)
	}
}

func (g *Game) renderBlocks(dst *core.Screen, snap *sim.Snapshot) {
	for _, b := range snap.Blocks {
		if b.Broken {
			continue
		}
		glyph := BlockChar
		color := core.PaletteColor(b.Color)
		if b.Unbreakable {
			glyph = WallBlockChar
		}
		dst.DrawRect(g.view.box(b.Rect), glyph, color)
	}
}

// renderDrops draws falling power-ups as their three-character glyph.
func (g *Game) renderDrops(dst *core.Screen, snap *sim.Snapshot) {
	for _, d := range snap.Drops {
		x, y := g.view.cell(d.Pos)
		glyph := d.PowerUp.Glyph()
		dst.DrawTextColored(x-utf8.RuneCountInString(glyph)/2, y, glyph, dropColor(d.PowerUp))
	}
}

func dropColor(p sim.PowerUp) core.Color {
	switch p {
	case sim.PadShrink:
		return core.ColorRed
	case sim.BallSpeedUp:
		return core.ColorOrange
	case sim.ShieldUpgrade:
		return core.ColorCyan
	case sim.MissileGrant:
		return core.ColorMagenta
	case sim.ScoreMultiplier:
		return core.ColorBrightYellow
	default:
		return core.ColorGreen
	}
}

// renderMissiles draws each missile with a trail back to where it was fired.
func (g *Game) renderMissiles(dst *core.Screen, snap *sim.Snapshot) {
	for _, m := range snap.Missiles {
		x, y := g.view.cell(m.Pos)
		_, origin := g.view.cell(core.Vec(m.Pos.X, m.OriginY))
		if origin > y {
			dst.DrawVLine(x, y+1, origin-y, TrailChar, core.ColorGray)
		}
		dst.SetColored(x, y, MissileChar, core.ColorBrightRed)
	}
}

func (g *Game) renderPaddle(dst *core.Screen, snap *sim.Snapshot) {
	x1, y := g.view.cell(core.Vec(snap.Paddle.Min.X, snap.Paddle.Center().Y))
	x2, _ := g.view.cell(snap.Paddle.Max)
	dst.DrawHLine(x1, y, max(x2-x1+1, 1), PaddleChar, core.ColorBrightWhite)
}

func (g *Game) renderBalls(dst *core.Screen, snap *sim.Snapshot) {
	for _, b := range snap.Balls {
		x, y := g.view.cell(b)
		dst.SetColored(x, y, BallChar, core.ColorBrightWhite)
	}
}

// renderStatus draws the notification bar under the well, or the launch
// hint while serving.
func (g *Game) renderStatus(dst *core.Screen, snap *sim.Snapshot) {
	row := g.view.statusRow()
	switch {
	case snap.Notification != "":
		dst.DrawTextCentered(row, snap.Notification)
	case g.state == StateServe:
		dst.DrawTextCentered(row, "Press SPACE to launch")
	}
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Level %d  Score: %d  |  Press R to restart", g.stats.Level+1, g.stats.Score)
		drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateWin:
		subtitle := fmt.Sprintf("All %d levels  Score: %d  |  Press R to restart", g.stats.Level, g.stats.Score)
		drawCenteredBox(dst, "YOU WIN!", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	titleW := utf8.RuneCountInString(title)
	subtitleW := utf8.RuneCountInString(subtitle)

	b := core.Box{W: max(titleW, subtitleW) + 4, H: 5}
	b.X = (dst.Width() - b.W) / 2
	b.Y = (dst.Height() - b.H) / 2

	dst.DrawRect(b, ' ', core.ColorDefault)
	dst.DrawBox(b, core.ColorWhite)

	dst.DrawTextColored(b.X+(b.W-titleW)/2, b.Y+1, title, core.ColorBrightYellow)
	dst.DrawText(b.X+(b.W-subtitleW)/2, b.Y+3, subtitle)
}
