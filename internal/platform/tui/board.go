package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Layout constants. Every grid cell is drawn two columns wide so the board
// looks square in a terminal.
const (
	cellWidth = 2
	hudHeight = 2 // Status line plus separator
)

// Cell glyphs, one per column of a cell.
var (
	headGlyph   = [cellWidth]rune{'█', '█'}
	bodyGlyph   = [cellWidth]rune{'▓', '▓'}
	targetGlyph = [cellWidth]rune{'<', '>'}
)

// HUD carries the presentation-only details drawn above the board.
type HUD struct {
	Pilot string // Autopilot title, empty for human play
	Flash string // Short transient message
}

// BoardSize returns the screen size needed to draw a grid of n cells per side.
func BoardSize(n int) (w, h int) {
	return n*cellWidth + 2, n + 2 + hudHeight
}

// DrawBoard renders a snapshot into the screen: HUD line, framed grid, the
// actor and target, and an overlay when the game is paused or over.
func DrawBoard(dst *core.Screen, s snake.State, hud HUD) {
	dst.Clear()
	drawHUD(dst, s, hud)

	w, h := BoardSize(s.GridSize)
	if dst.Width() < w || dst.Height() < h {
		drawOverlay(dst, core.ColorYellow, "Window too small",
			fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	frame := core.NewRect((dst.Width()-w)/2, hudHeight, w, h-hudHeight)
	dst.DrawBox(frame, core.ColorGray)
	origin := core.Point{X: frame.X + 1, Y: frame.Y + 1}

	// Target first so the actor covers it when the target sits under the body.
	drawCell(dst, origin, s.Target, targetGlyph, core.ColorBrightRed)
	for i := len(s.Actor) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(dst, origin, s.Actor[i], headGlyph, core.ColorBrightGreen)
		} else {
			drawCell(dst, origin, s.Actor[i], bodyGlyph, core.ColorGreen)
		}
	}

	switch s.Status {
	case snake.StatusPaused:
		drawOverlay(dst, core.ColorYellow, "PAUSED", "space or p to resume")
	case snake.StatusOver:
		drawOverlay(dst, core.ColorBrightRed, "GAME OVER",
			fmt.Sprintf("Score %d, %s", s.Score, endText(s.End)),
			"r to restart, q to quit")
	}
}

func drawCell(dst *core.Screen, origin core.Point, p snake.Position, glyph [cellWidth]rune, c core.Color) {
	x := origin.X + p.X*cellWidth
	y := origin.Y + p.Y
	for i, r := range glyph {
		dst.SetColored(x+i, y, r, c)
	}
}

func drawHUD(dst *core.Screen, s snake.State, hud HUD) {
	line := fmt.Sprintf(" SNAKE  Score: %d  Length: %d", s.Score, s.Len())
	if hud.Pilot != "" {
		line += "  Pilot: " + hud.Pilot
	}
	dst.DrawTextColored(0, 0, line, core.ColorBrightWhite)

	if hud.Flash != "" {
		x := dst.Width() - len([]rune(hud.Flash)) - 1
		dst.DrawTextColored(x, 0, hud.Flash, core.ColorCyan)
	}

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// drawOverlay draws a centered box with one line of text per row.
func drawOverlay(dst *core.Screen, c core.Color, lines ...string) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len([]rune(l)))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 4
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, l := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = c
		}
		dst.DrawTextCentered(box.Y+2+i, l, color)
	}
}

func endText(o snake.Outcome) string {
	switch o {
	case snake.OutcomeHitWall:
		return "hit the wall"
	case snake.OutcomeHitSelf:
		return "bit itself"
	default:
		return "game over"
	}
}
