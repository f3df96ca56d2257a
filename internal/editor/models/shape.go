package models

import (
	"errors"
	"fmt"

	"imagemap-studio/internal/editor/geometry"

	"gonum.org/v1/gonum/stat"
)

// ============================================================
// Shape variants
// ============================================================

type ShapeKind string

const (
	ShapeRect   ShapeKind = "rect"
	ShapeCircle ShapeKind = "circle"
	ShapePoly   ShapeKind = "poly"
)

var (
	ErrUnknownShape   = errors.New("unknown shape kind")
	ErrCoordArity     = errors.New("coordinate count does not match shape")
	ErrNegativeRadius = errors.New("circle radius must not be negative")
)

// Label: человекочитаемое имя вида фигуры.
func (k ShapeKind) Label() string {
	switch k {
	case ShapeRect:
		return "Rectangle"
	case ShapeCircle:
		return "Circle"
	case ShapePoly:
		return "Polygon"
	}
	return string(k)
}

// Shape: геометрия области. Вид фиксируется при создании.
type Shape interface {
	Kind() ShapeKind
	Coords() []int
	Center() geometry.PointF
	Handles() []geometry.Point
	Translate(dx, dy int) Shape
	ResizeHandle(index int, p geometry.Point) Shape
}

// ShapeFromCoords собирает фигуру из плоского списка координат с проверкой арности.
func ShapeFromCoords(kind ShapeKind, coords []int) (Shape, error) {
	switch kind {
	case ShapeRect:
		if len(coords) != 4 {
			return nil, fmt.Errorf("rect wants 4 values, got %d: %w", len(coords), ErrCoordArity)
		}
		return Rect{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}, nil
	case ShapeCircle:
		if len(coords) != 3 {
			return nil, fmt.Errorf("circle wants 3 values, got %d: %w", len(coords), ErrCoordArity)
		}
		if coords[2] < 0 {
			return nil, fmt.Errorf("circle radius %d: %w", coords[2], ErrNegativeRadius)
		}
		return Circle{CX: coords[0], CY: coords[1], R: coords[2]}, nil
	case ShapePoly:
		if len(coords) < 6 || len(coords)%2 != 0 {
			return nil, fmt.Errorf("poly wants an even count >= 6, got %d: %w", len(coords), ErrCoordArity)
		}
		points := make([]geometry.Point, 0, len(coords)/2)
		for i := 0; i < len(coords); i += 2 {
			points = append(points, geometry.Point{X: coords[i], Y: coords[i+1]})
		}
		return Polygon{Points: points}, nil
	}
	return nil, fmt.Errorf("%q: %w", kind, ErrUnknownShape)
}

// ============================================================
// Rect
// ============================================================

// Rect хранит два противоположных угла: [x1, y1, x2, y2].
type Rect struct {
	X1, Y1, X2, Y2 int
}

// NewRect строит нормализованный прямоугольник по двум произвольным углам.
func NewRect(a, b geometry.Point) Rect {
	return Rect{
		X1: min(a.X, b.X),
		Y1: min(a.Y, b.Y),
		X2: max(a.X, b.X),
		Y2: max(a.Y, b.Y),
	}
}

func (r Rect) Kind() ShapeKind { return ShapeRect }

func (r Rect) Coords() []int { return []int{r.X1, r.Y1, r.X2, r.Y2} }

func (r Rect) Center() geometry.PointF {
	return geometry.PointF{
		X: float64(r.X1+r.X2) / 2,
		Y: float64(r.Y1+r.Y2) / 2,
	}
}

// Handles: 0 = (x1,y1), 1 = (x2,y1), 2 = (x2,y2), 3 = (x1,y2).
func (r Rect) Handles() []geometry.Point {
	return []geometry.Point{
		{X: r.X1, Y: r.Y1},
		{X: r.X2, Y: r.Y1},
		{X: r.X2, Y: r.Y2},
		{X: r.X1, Y: r.Y2},
	}
}

func (r Rect) Translate(dx, dy int) Shape {
	return Rect{X1: r.X1 + dx, Y1: r.Y1 + dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
}

// ResizeHandle двигает один угол; противоположный угол остается на месте.
// Порядок min/max здесь не восстанавливается, см. Normalize.
func (r Rect) ResizeHandle(index int, p geometry.Point) Shape {
	switch index {
	case 0:
		r.X1, r.Y1 = p.X, p.Y
	case 1:
		r.X2, r.Y1 = p.X, p.Y
	case 2:
		r.X2, r.Y2 = p.X, p.Y
	case 3:
		r.X1, r.Y2 = p.X, p.Y
	}
	return r
}

// Normalize возвращает прямоугольник с x1 <= x2 и y1 <= y2.
func (r Rect) Normalize() Rect {
	return NewRect(geometry.Point{X: r.X1, Y: r.Y1}, geometry.Point{X: r.X2, Y: r.Y2})
}

func (r Rect) Width() int  { return geometry.Abs(r.X2 - r.X1) }
func (r Rect) Height() int { return geometry.Abs(r.Y2 - r.Y1) }

// ============================================================
// Circle
// ============================================================

// Circle: [centerX, centerY, radius].
type Circle struct {
	CX, CY, R int
}

func (c Circle) Kind() ShapeKind { return ShapeCircle }

func (c Circle) Coords() []int { return []int{c.CX, c.CY, c.R} }

func (c Circle) Center() geometry.PointF {
	return geometry.PointF{X: float64(c.CX), Y: float64(c.CY)}
}

// Handles: одна ручка на правой точке окружности.
func (c Circle) Handles() []geometry.Point {
	return []geometry.Point{{X: c.CX + c.R, Y: c.CY}}
}

// Translate двигает только центр, радиус не меняется.
func (c Circle) Translate(dx, dy int) Shape {
	return Circle{CX: c.CX + dx, CY: c.CY + dy, R: c.R}
}

func (c Circle) ResizeHandle(_ int, p geometry.Point) Shape {
	c.R = geometry.Round(geometry.Distance(p, geometry.Point{X: c.CX, Y: c.CY}))
	return c
}

// ============================================================
// Polygon
// ============================================================

// Polygon: вершины в порядке обхода контура.
type Polygon struct {
	Points []geometry.Point
}

func (p Polygon) Kind() ShapeKind { return ShapePoly }

func (p Polygon) Coords() []int {
	coords := make([]int, 0, len(p.Points)*2)
	for _, pt := range p.Points {
		coords = append(coords, pt.X, pt.Y)
	}
	return coords
}

// Center: среднее арифметическое вершин.
func (p Polygon) Center() geometry.PointF {
	if len(p.Points) == 0 {
		return geometry.PointF{}
	}
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	for i, pt := range p.Points {
		xs[i] = float64(pt.X)
		ys[i] = float64(pt.Y)
	}
	return geometry.PointF{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
}

func (p Polygon) Handles() []geometry.Point {
	out := make([]geometry.Point, len(p.Points))
	copy(out, p.Points)
	return out
}

func (p Polygon) Translate(dx, dy int) Shape {
	out := make([]geometry.Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Add(dx, dy)
	}
	return Polygon{Points: out}
}

// ResizeHandle меняет только одну вершину.
func (p Polygon) ResizeHandle(index int, pt geometry.Point) Shape {
	if index < 0 || index >= len(p.Points) {
		return p
	}
	out := make([]geometry.Point, len(p.Points))
	copy(out, p.Points)
	out[index] = pt
	return Polygon{Points: out}
}
