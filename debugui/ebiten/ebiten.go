// Package ebiten hosts the debug overlay on the Ebiten ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/shapesort/debugui"
)

// ImguiBackend wraps the Ebiten ImGui backend together with the overlay it
// renders.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// New creates the backend window. The game must still call ebiten.RunGame.
func New(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend, Overlay: overlay}
}

// Update runs one overlay frame of dt seconds.
func (b *ImguiBackend) Update(dt float64) {
	b.BeginFrame()
	b.Overlay.Update(dt)
	b.EndFrame()
}

// Draw paints the overlay on top of screen when it is visible.
func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	if b.Overlay.Visible() {
		b.EbitenBackend.Draw(screen)
	}
}
