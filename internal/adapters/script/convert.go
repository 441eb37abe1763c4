package script

import (
	"fmt"

	"github.com/risor-io/risor/object"
	"go.trai.ch/polish/internal/core/domain"
)

// toObject converts decoded configuration values into Risor objects.
func toObject(v any) object.Object {
	switch t := v.(type) {
	case nil:
		return object.Nil
	case string:
		return object.NewString(t)
	case bool:
		return object.NewBool(t)
	case int:
		return object.NewInt(int64(t))
	case int64:
		return object.NewInt(t)
	case float64:
		return object.NewFloat(t)
	case []any:
		items := make([]object.Object, 0, len(t))
		for _, item := range t {
			items = append(items, toObject(item))
		}
		return object.NewList(items)
	case map[string]any:
		m := make(map[string]object.Object, len(t))
		for k, item := range t {
			m[k] = toObject(item)
		}
		return object.NewMap(m)
	default:
		return object.NewString(fmt.Sprint(t))
	}
}

// nodeObject exposes a node and its direct children to scripts.
func nodeObject(n domain.Node) *object.Map {
	m := nodeFields(n)
	children := n.Children()
	items := make([]object.Object, 0, len(children))
	for _, c := range children {
		items = append(items, object.NewMap(nodeFields(c)))
	}
	m["children"] = object.NewList(items)
	return object.NewMap(m)
}

func nodeFields(n domain.Node) map[string]object.Object {
	start, end := n.Start(), n.End()
	return map[string]object.Object{
		"kind":       object.NewString(n.Kind()),
		"text":       object.NewString(n.Text()),
		"named":      object.NewBool(n.Named()),
		"line":       object.NewInt(int64(start.Line)),
		"column":     object.NewInt(int64(start.Column)),
		"end_line":   object.NewInt(int64(end.Line)),
		"end_column": object.NewInt(int64(end.Column)),
	}
}
