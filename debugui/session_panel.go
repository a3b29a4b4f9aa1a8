package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shapesort/ecs"
)

// SessionPanel shows the session state with its controls, the tick loop's
// timings and a summary of the engine's storage.
type SessionPanel struct {
	target Target
	frames *FrameHistory
}

func (p *SessionPanel) Render() {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	session := p.target.Session()
	imgui.Text(fmt.Sprintf("Phase: %s", session.Phase))
	imgui.Text(fmt.Sprintf("Level: %d / %d", session.Level, session.Levels))
	imgui.Text(fmt.Sprintf("Score: %d", session.Score))
	imgui.Text(fmt.Sprintf("Processed: %d / %d", session.Processed, session.Quota))
	imgui.Text(fmt.Sprintf("Speed: %.2f  Spacing: %.0f", session.Speed, session.Spacing))
	imgui.Text(fmt.Sprintf("Clock: %s", session.Clock))

	if imgui.TreeNodeStr("Counters") {
		imgui.BulletText(fmt.Sprintf("correct %d", session.Counters.Correct))
		imgui.BulletText(fmt.Sprintf("incorrect %d", session.Counters.Incorrect))
		imgui.BulletText(fmt.Sprintf("miss %d", session.Counters.Miss))
		imgui.BulletText(fmt.Sprintf("expired %d", session.Counters.Expired))
		imgui.TreePop()
	}

	if imgui.Button("Start") {
		p.target.Start()
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		p.target.Reset()
	}
	imgui.SameLine()
	if imgui.Button("Abandon") {
		p.target.Abandon()
	}

	imgui.Separator()
	avg := p.frames.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	samples := p.frames.Samples()
	imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))

	p.renderSystems()

	p.target.Inspect(func(storage *ecs.Storage) {
		renderStorageStats(storage.CollectStats())
	})
}

func (p *SessionPanel) renderSystems() {
	stats := p.target.Stats()
	if !imgui.TreeNodeStr(fmt.Sprintf("Systems (%d frames)", stats.Frames)) {
		return
	}
	defer imgui.TreePop()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if !imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Last")
	imgui.TableSetupColumn("Avg")
	imgui.TableSetupColumn("Max")
	imgui.TableHeadersRow()
	for _, s := range stats.Systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(s.Name)
		imgui.TableNextColumn()
		imgui.Text(s.LastDuration.String())
		imgui.TableNextColumn()
		imgui.Text(s.AvgDuration.String())
		imgui.TableNextColumn()
		imgui.Text(s.MaxDuration.String())
	}
	imgui.EndTable()
}

func renderStorageStats(stats *ecs.StorageStats) {
	if !imgui.TreeNodeStr(fmt.Sprintf("Storage (%d entities)", stats.TotalEntityCount)) {
		return
	}
	defer imgui.TreePop()

	imgui.Text(fmt.Sprintf("Archetypes: %d  Singletons: %d", stats.ArchetypeCount, stats.SingletonCount))
	for _, arch := range stats.ArchetypeBreakdown {
		imgui.BulletText(fmt.Sprintf("0x%X %v: %d", arch.ID, arch.ComponentTypes, arch.EntityCount))
	}
	for _, name := range stats.SingletonTypes {
		imgui.BulletText(name)
	}
}
