// Package frontend is the playable window: it draws engine snapshots with
// Ebiten, forwards mouse and touch input, and plays the cue sounds.
package frontend

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/shapesort/debugui"
	debugui_ebiten "github.com/plus3/shapesort/debugui/ebiten"
	"github.com/plus3/shapesort/sorter"
	"github.com/rs/zerolog"
)

const flashDuration = 700 * time.Millisecond

type Options struct {
	Title  string
	Logger zerolog.Logger
	Seed   uint64
	// Volume is the linear cue volume; zero mutes.
	Volume float64
	// Debug adds the ImGui inspector, toggled with F1.
	Debug bool
}

func DefaultOptions() Options {
	return Options{
		Title:  "Shape Sorter",
		Logger: zerolog.Nop(),
		Seed:   uint64(time.Now().UnixNano()),
		Volume: 0.5,
	}
}

// flash is a short line of feedback after a drop.
type flash struct {
	text string
	left time.Duration
}

// Game implements ebiten.Game around one engine.
type Game struct {
	engine  *sorter.Engine
	scene   *Scene
	screens screens
	input   input
	debug   *debugui_ebiten.ImguiBackend
	log     zerolog.Logger

	frame time.Duration
	belt  float64
	flash flash
}

// New builds the engine for cfg and the window around it. The window opens
// in Run.
func New(cfg sorter.Config, opts Options) (*Game, error) {
	var sound CuePlayer
	if opts.Volume > 0 {
		sound = NewSound(opts.Volume, opts.Logger)
	}
	scene := NewScene(sound, opts.Seed)

	engine, err := sorter.New(cfg,
		sorter.WithPresenter(scene),
		sorter.WithLogger(opts.Logger),
		sorter.WithSeed(opts.Seed),
	)
	if err != nil {
		return nil, err
	}

	g := &Game{
		engine:  engine,
		scene:   scene,
		screens: newScreens(cfg.Field),
		log:     opts.Logger.With().Str("system", "frontend").Logger(),
		frame:   time.Second / time.Duration(ebiten.DefaultTPS),
	}

	w, h := int(cfg.Field.Width), int(cfg.Field.Height)
	if opts.Debug {
		g.debug = debugui_ebiten.New(opts.Title, w, h, debugui.NewOverlay(engine))
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(opts.Title)
	}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	g.log.Info().Msg("window opened")
	return ebiten.RunGame(g)
}

func (g *Game) Engine() *sorter.Engine {
	return g.engine
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.debug != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.Overlay.Toggle()
	}

	if ev, ok := g.input.poll(); ok && (g.debug == nil || !g.debug.Overlay.WantsPointer()) {
		g.handle(ev)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && g.engine.Session().Phase == sorter.Idle {
		g.engine.Start()
	}

	g.engine.Tick(g.frame)
	session := g.engine.Session()
	if session.Phase == sorter.Active || session.Phase == sorter.Transitioning {
		g.belt += session.Speed * float64(g.frame) / float64(g.engine.Config().FrameUnit)
	}

	g.scene.Update(g.frame)
	g.updateFlash()

	if g.debug != nil {
		g.debug.Update(g.frame.Seconds())
	}
	return nil
}

// handle routes one pointer event according to the session phase.
func (g *Game) handle(ev pointerEvent) {
	switch g.engine.Session().Phase {
	case sorter.Idle:
		if ev.phase == pointerPress && g.screens.start.contains(ev.pos) {
			g.engine.Start()
		}

	case sorter.Active, sorter.Transitioning:
		switch ev.phase {
		case pointerPress:
			g.engine.Press(ev.pos)
		case pointerMove:
			g.engine.Move(ev.pos)
		case pointerRelease:
			g.engine.Release(ev.pos)
		}

	case sorter.Complete:
		if ev.phase != pointerPress {
			return
		}
		switch {
		case g.screens.again.contains(ev.pos):
			g.engine.Reset()
		case g.screens.menu.contains(ev.pos):
			g.engine.Abandon()
		}
	}
}

func (g *Game) updateFlash() {
	for _, o := range g.scene.Outcomes() {
		switch o {
		case sorter.OutcomeCorrect:
			g.flash = flash{text: fmt.Sprintf("+%d", g.engine.Config().Reward), left: flashDuration}
		case sorter.OutcomeIncorrect:
			g.flash = flash{text: "Wrong basket!", left: flashDuration}
		case sorter.OutcomeMiss:
			g.flash = flash{text: "Missed!", left: flashDuration}
		}
	}
	g.flash.left -= g.frame
}

func (g *Game) Draw(screen *ebiten.Image) {
	cfg := g.engine.Config()
	status := g.engine.Snapshot()

	screen.Fill(skyColor)
	for _, b := range status.Baskets {
		drawBasket(screen, b, cfg.CaptureRadius)
	}
	drawConveyor(screen, cfg.Field, cfg.LaneY, g.belt)
	for _, c := range status.Carriers {
		drawCarrier(screen, c.Position)
	}
	for _, s := range status.Shapes {
		drawShape(screen, s.Kind, s.Position, 1, g.scene.Tint(s.Carrier))
	}
	g.scene.drawEffects(screen)

	switch status.Phase {
	case sorter.Idle:
		shade(screen, cfg.Field)
		g.screens.drawMenu(screen, cfg)
	case sorter.Active:
		drawHUD(screen, status.Session, cfg.Field)
	case sorter.Transitioning:
		drawHUD(screen, status.Session, cfg.Field)
		g.screens.drawBanner(screen, status.Session)
	case sorter.Complete:
		g.screens.drawGameOver(screen, status.Session)
	}

	if g.flash.left > 0 {
		centered(screen, g.flash.text, cfg.Field.Width/2, 40)
	}

	if g.debug != nil {
		g.debug.Draw(screen)
	}
}

func (g *Game) Layout(int, int) (int, int) {
	field := g.engine.Config().Field
	w, h := int(field.Width), int(field.Height)
	if g.debug != nil {
		g.debug.Layout(w, h)
	}
	return w, h
}
