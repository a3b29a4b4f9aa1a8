// Package debugui draws Dear ImGui panels over a running session: session
// controls, tick timings, an entity browser and a component inspector.
//
// The panels live in their own small ECS storage as ImguiItem entities. An
// ImguiSystem queues their render functions each frame, so the overlay is
// driven the same way as any other set of systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shapesort/ecs"
	"github.com/plus3/shapesort/sorter"
)

// ImguiItem is a component holding one panel's render function.
type ImguiItem struct {
	Name   string
	Render func()
}

// InputState is a singleton recording whether ImGui wants the pointer or
// keyboard this frame.
type InputState struct {
	Visible             bool
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes InputState and defers every ImguiItem's render
// function to the end of the frame. Hidden overlays render nothing and
// capture nothing.
type ImguiSystem struct {
	Items ecs.Query[struct{ *ImguiItem }]
	Input ecs.Singleton[InputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.Input.Get()
	if !state.Visible {
		state.WantCaptureMouse = false
		state.WantCaptureKeyboard = false
		return
	}

	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}

// Target is what the panels inspect and control. *sorter.Engine satisfies it.
type Target interface {
	Inspect(fn func(storage *ecs.Storage))
	Stats() *ecs.SchedulerStats
	Session() sorter.Session
	Start() bool
	Reset()
	Abandon()
}

// Overlay owns the panels and the scheduler that renders them. Update must
// be called between the backend's BeginFrame and EndFrame.
type Overlay struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *ecs.Singleton[InputState]
	frames    *FrameHistory
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[ImguiItem](registry)
	return registry
}

// NewOverlay builds a hidden overlay with every panel for target.
func NewOverlay(target Target) *Overlay {
	storage := ecs.NewStorage(newRegistry())
	o := &Overlay{
		storage: storage,
		input:   ecs.NewSingleton(storage, InputState{}),
		frames:  NewFrameHistory(120),
	}

	selected := &selection{}
	session := &SessionPanel{target: target, frames: o.frames}
	browser := NewEntityBrowser(target, selected, 100)
	inspector := &ComponentInspector{target: target, selected: selected}

	storage.Spawn(ImguiItem{Name: "session", Render: session.Render})
	storage.Spawn(ImguiItem{Name: "entities", Render: browser.Render})
	storage.Spawn(ImguiItem{Name: "inspector", Render: inspector.Render})

	o.scheduler = ecs.NewScheduler(storage)
	o.scheduler.Register(&ImguiSystem{})
	return o
}

func (o *Overlay) Visible() bool {
	return o.input.Get().Visible
}

func (o *Overlay) Toggle() {
	state := o.input.Get()
	state.Visible = !state.Visible
}

// WantsPointer reports whether ImGui is using the mouse, in which case the
// game should ignore it.
func (o *Overlay) WantsPointer() bool {
	return o.input.Get().WantCaptureMouse
}

// Update records the frame time and renders every panel.
func (o *Overlay) Update(dt float64) {
	o.frames.Push(dt)
	o.scheduler.Once(dt)
}
