package frontend

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/shapesort/sorter"
)

var (
	buttonColor = color.RGBA{0x44, 0xaa, 0x44, 0xff}
	panelColor  = color.RGBA{0x22, 0x22, 0x22, 0xcc}
)

type button struct {
	label  string
	center sorter.Vec2
	size   sorter.Vec2
}

func (b button) contains(p sorter.Vec2) bool {
	return p.X >= b.center.X-b.size.X/2 && p.X <= b.center.X+b.size.X/2 &&
		p.Y >= b.center.Y-b.size.Y/2 && p.Y <= b.center.Y+b.size.Y/2
}

func (b button) draw(screen *ebiten.Image) {
	x := float32(b.center.X - b.size.X/2)
	y := float32(b.center.Y - b.size.Y/2)
	vector.DrawFilledRect(screen, x, y, float32(b.size.X), float32(b.size.Y), buttonColor, false)
	vector.StrokeRect(screen, x, y, float32(b.size.X), float32(b.size.Y), 2, outlineColor, false)
	centered(screen, b.label, b.center.X, b.center.Y-8)
}

// centered prints msg with the debug font (6x16 cells) centred on x.
func centered(screen *ebiten.Image, msg string, x, y float64) {
	ebitenutil.DebugPrintAt(screen, msg, int(x)-len(msg)*3, int(y))
}

// screens holds the buttons of the menu and game over screens.
type screens struct {
	field sorter.Size
	start button
	again button
	menu  button
}

func newScreens(field sorter.Size) screens {
	mid := sorter.Vec2{X: field.Width / 2, Y: field.Height / 2}
	size := sorter.Vec2{X: 200, Y: 50}
	return screens{
		field: field,
		start: button{label: "Start Game", center: mid, size: size},
		again: button{label: "Play Again", center: sorter.Vec2{X: mid.X - 120, Y: mid.Y + 100}, size: size},
		menu:  button{label: "Main Menu", center: sorter.Vec2{X: mid.X + 120, Y: mid.Y + 100}, size: size},
	}
}

func (s screens) drawMenu(screen *ebiten.Image, cfg sorter.Config) {
	centered(screen, "SHAPE SORTER", s.field.Width/2, s.field.Height/4)
	centered(screen, "Drag each shape into the basket that matches it", s.field.Width/2, s.field.Height/4+30)
	centered(screen, fmt.Sprintf("%d levels, %d shapes each", len(cfg.Levels), cfg.LevelAt(1).Quota), s.field.Width/2, s.field.Height/4+50)
	s.start.draw(screen)
}

// drawBanner announces a finished level while the board is still shown.
func (s screens) drawBanner(screen *ebiten.Image, session sorter.Session) {
	w, h := float32(360), float32(90)
	x, y := float32(s.field.Width/2)-w/2, float32(s.field.Height/2)-h/2
	vector.DrawFilledRect(screen, x, y, w, h, panelColor, false)

	title := fmt.Sprintf("Level %d complete!", session.Level)
	next := "Get ready for the next level"
	if session.Level >= session.Levels {
		next = "That was the last one"
	}
	centered(screen, title, s.field.Width/2, s.field.Height/2-24)
	centered(screen, fmt.Sprintf("Score: %d", session.Score), s.field.Width/2, s.field.Height/2-4)
	centered(screen, next, s.field.Width/2, s.field.Height/2+16)
}

func (s screens) drawGameOver(screen *ebiten.Image, session sorter.Session) {
	shade(screen, s.field)
	drawStar(screen, sorter.Vec2{X: s.field.Width / 2, Y: s.field.Height/4 - 40}, 40, 1)
	centered(screen, "YOU WIN!", s.field.Width/2, s.field.Height/4)
	centered(screen, "All levels completed", s.field.Width/2, s.field.Height/4+30)
	centered(screen, fmt.Sprintf("Final score: %d", session.Score), s.field.Width/2, s.field.Height/2)
	centered(screen, fmt.Sprintf("%d sorted, %d wrong, %d missed, %d lost",
		session.Counters.Correct, session.Counters.Incorrect, session.Counters.Miss, session.Counters.Expired),
		s.field.Width/2, s.field.Height/2+24)
	s.again.draw(screen)
	s.menu.draw(screen)
}

// drawHUD shows level, score and shapes left this level.
func drawHUD(screen *ebiten.Image, session sorter.Session, field sorter.Size) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level: %d/%d", session.Level, session.Levels), 16, 16)
	score := fmt.Sprintf("Score: %d", session.Score)
	ebitenutil.DebugPrintAt(screen, score, int(field.Width)/2-len(score)*3, 16)
	left := fmt.Sprintf("Shapes: %d", session.Remaining())
	ebitenutil.DebugPrintAt(screen, left, int(field.Width)-16-len(left)*6, 16)
}
