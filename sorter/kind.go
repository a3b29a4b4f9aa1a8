package sorter

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// ShapeKind is the closed set of shapes a carrier can hold.
type ShapeKind uint8

const (
	Circle ShapeKind = iota + 1
	Triangle
	Square
	Rectangle
)

// AllKinds lists every ShapeKind in declaration order.
var AllKinds = []ShapeKind{Circle, Triangle, Square, Rectangle}

const circleRadius = 30

func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Triangle:
		return "triangle"
	case Square:
		return "square"
	case Rectangle:
		return "rectangle"
	default:
		return "unknown"
	}
}

func (k ShapeKind) Valid() bool {
	return k >= Circle && k <= Rectangle
}

// ParseShapeKind is the inverse of String, ignoring case.
func ParseShapeKind(s string) (ShapeKind, error) {
	for _, k := range AllKinds {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}
	return 0, eris.Wrapf(ErrUnknownKind, "%q", s)
}

// Extent is the width and height of the shape's bounding box.
func (k ShapeKind) Extent() Vec2 {
	switch k {
	case Circle:
		return Vec2{2 * circleRadius, 2 * circleRadius}
	case Triangle, Square:
		return Vec2{60, 60}
	case Rectangle:
		return Vec2{80, 40}
	default:
		return Vec2{}
	}
}

// Contains hit-tests p against a shape of kind k centred on center. Circles
// use the radius; every other kind uses its axis-aligned bounds.
func (k ShapeKind) Contains(center, p Vec2) bool {
	switch k {
	case Circle:
		return center.Dist(p) <= circleRadius
	case Triangle, Square, Rectangle:
		size := k.Extent()
		return math.Abs(p.X-center.X) <= size.X/2 && math.Abs(p.Y-center.Y) <= size.Y/2
	default:
		return false
	}
}

func (k ShapeKind) MarshalYAML() (any, error) {
	if !k.Valid() {
		return nil, eris.Wrapf(ErrUnknownKind, "%d", uint8(k))
	}
	return k.String(), nil
}

func (k *ShapeKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return eris.Wrap(err, "shape kind must be a string")
	}
	parsed, err := ParseShapeKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
