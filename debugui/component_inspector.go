package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/shapesort/ecs"
)

// ComponentInspector shows and edits the components of the selected entity.
// Edits are written straight into storage under the engine lock.
type ComponentInspector struct {
	target   Target
	selected *selection
}

func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	id := ci.selected.id
	if id == 0 {
		imgui.Text("No entity selected")
		return
	}

	ci.target.Inspect(func(storage *ecs.Storage) {
		archetype := storage.GetArchetypeById(id.ArchetypeId())
		if archetype == nil || !storage.Alive(id) {
			imgui.Text(fmt.Sprintf("Entity %d is gone", id))
			return
		}

		imgui.Text(fmt.Sprintf("Entity %d", id))
		imgui.Text(fmt.Sprintf("Archetype 0x%X", archetype.ID()))
		imgui.Separator()

		for _, t := range archetype.Types() {
			component := storage.GetComponent(id, t)
			if component == nil {
				continue
			}
			if imgui.TreeNodeStr(t.String()) {
				renderStruct(reflect.ValueOf(component).Elem())
				imgui.TreePop()
			}
		}
	})
}

// renderStruct draws an editor for every exported field of v, which must be
// addressable.
func renderStruct(v reflect.Value) {
	for _, field := range globalReflectionCache.GetFields(v.Type()) {
		renderField(field, v.Field(field.Index))
	}
}

func renderField(field FieldInfo, v reflect.Value) {
	label := "##" + field.Name
	if field.IsPointer {
		if v.IsNil() {
			imgui.Text(field.Name + ": nil")
			return
		}
		// Pointers are shown but never followed for editing.
		imgui.Text(fmt.Sprintf("%s: %v", field.Name, v.Elem().Interface()))
		return
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			imgui.Text(fmt.Sprintf("%s: %s", field.Name, s))
			return
		}
		n := int32(toInt64(v))
		imgui.Text(field.Name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(label, &n) {
			assign(v, int64(n))
		}

	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		imgui.Text(field.Name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(label, &f) {
			assign(v, float64(f))
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(field.Name, &b) {
			assign(v, b)
		}

	case reflect.String:
		s := v.String()
		imgui.Text(field.Name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(label, "", &s, imgui.InputTextFlagsNone, nil) {
			assign(v, s)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(field.Name) {
			renderStruct(v)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", field.Name, v.Interface()))
	}
}

func toInt64(v reflect.Value) int64 {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint())
	default:
		return v.Int()
	}
}

// assign stores value into v, converting between numeric kinds. It returns
// false when v cannot be set, the kinds don't match or the value would
// overflow.
func assign(v reflect.Value, value any) bool {
	if !v.CanSet() {
		return false
	}

	switch x := value.(type) {
	case int64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if v.OverflowInt(x) {
				return false
			}
			v.SetInt(x)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if x < 0 || v.OverflowUint(uint64(x)) {
				return false
			}
			v.SetUint(uint64(x))
		default:
			return false
		}
	case float64:
		if v.Kind() != reflect.Float32 && v.Kind() != reflect.Float64 {
			return false
		}
		v.SetFloat(x)
	case bool:
		if v.Kind() != reflect.Bool {
			return false
		}
		v.SetBool(x)
	case string:
		if v.Kind() != reflect.String {
			return false
		}
		v.SetString(x)
	default:
		return false
	}
	return true
}
