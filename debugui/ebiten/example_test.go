package ebiten_test

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/shapesort/debugui"
	debugui_ebiten "github.com/plus3/shapesort/debugui/ebiten"
	"github.com/plus3/shapesort/sorter"
)

// game ticks the engine and shows the overlay on top of it.
type game struct {
	engine  *sorter.Engine
	backend *debugui_ebiten.ImguiBackend
}

func (g *game) Update() error {
	frame := time.Second / time.Duration(ebiten.TPS())
	g.engine.Tick(frame)
	g.backend.Update(frame.Seconds())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	// Draw the board here.
	g.backend.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	engine, err := sorter.New(sorter.DefaultConfig())
	if err != nil {
		panic(err)
	}

	overlay := debugui.NewOverlay(engine)
	overlay.Toggle()

	g := &game{
		engine:  engine,
		backend: debugui_ebiten.New("shapesort debug", 1280, 720, overlay),
	}
	engine.Start()

	if err := ebiten.RunGame(g); err != nil {
		panic(err)
	}
}
