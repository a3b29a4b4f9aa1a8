package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shapesort/ecs"
)

// selection is the entity shared by the browser and the inspector.
type selection struct {
	id ecs.EntityId
}

type EntityInfo struct {
	ID          ecs.EntityId
	ArchetypeID uint32
	Components  []string
}

// Columns of the entity table.
const (
	columnID = iota
	columnArchetype
	columnComponents
)

// collectEntities lists every live entity in archetype creation order.
func collectEntities(storage *ecs.Storage) []EntityInfo {
	var entities []EntityInfo
	for _, archetype := range storage.GetArchetypes() {
		names := make([]string, len(archetype.Types()))
		for i, t := range archetype.Types() {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			entities = append(entities, EntityInfo{
				ID:          id,
				ArchetypeID: archetype.ID(),
				Components:  names,
			})
		}
	}
	return entities
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	slices.SortStableFunc(entities, func(a, b EntityInfo) int {
		var c int
		switch column {
		case columnArchetype:
			c = cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case columnComponents:
			c = cmp.Compare(strings.Join(a.Components, ","), strings.Join(b.Components, ","))
		default:
			c = cmp.Compare(a.ID, b.ID)
		}
		if !ascending {
			c = -c
		}
		return c
	})
}

// filterEntities keeps entities whose id, archetype or component names
// contain text, ignoring case.
func filterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}
	text = strings.ToLower(text)

	var filtered []EntityInfo
	for _, e := range entities {
		if strings.Contains(fmt.Sprintf("%d", e.ID), text) ||
			strings.Contains(fmt.Sprintf("0x%x", e.ArchetypeID), text) ||
			strings.Contains(strings.ToLower(strings.Join(e.Components, " ")), text) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// EntityBrowser is a paged, sortable table of the engine's entities. The
// list is rebuilt every frame since carriers come and go constantly.
type EntityBrowser struct {
	target   Target
	selected *selection

	filter    string
	page      int
	perPage   int
	column    int
	ascending bool
}

func NewEntityBrowser(target Target, selected *selection, perPage int) *EntityBrowser {
	return &EntityBrowser{
		target:    target,
		selected:  selected,
		perPage:   max(perPage, 1),
		ascending: true,
	}
}

func (b *EntityBrowser) Render() {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	var entities []EntityInfo
	b.target.Inspect(func(storage *ecs.Storage) {
		entities = collectEntities(storage)
	})

	imgui.InputTextWithHint("##search", "Search...", &b.filter, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		b.filter = ""
		b.page = 0
	}

	entities = filterEntities(entities, b.filter)
	sortEntities(entities, b.column, b.ascending)

	pages := max((len(entities)+b.perPage-1)/b.perPage, 1)
	b.page = min(b.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		specs := imgui.TableGetSortSpecs()
		if specs.SpecsDirty() && specs.SpecsCount() > 0 {
			spec := specs.Specs()
			b.column = int(spec.ColumnIndex())
			b.ascending = spec.SortDirection() == imgui.SortDirectionAscending
			specs.SetSpecsDirty(false)
		}

		start := b.page * b.perPage
		end := min(start+b.perPage, len(entities))
		for _, e := range entities[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", e.ID), b.selected.id == e.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				b.selected.id = e.ID
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%X", e.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(e.Components, ", "))
		}
		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", b.page+1, pages, len(entities)))
	imgui.SameLine()
	if imgui.Button("Prev") && b.page > 0 {
		b.page--
	}
	imgui.SameLine()
	if imgui.Button("Next") && b.page < pages-1 {
		b.page++
	}
}
