package geometry

import "math"

// ============================================================
// Geometry primitives
// ============================================================

// Point: целочисленная точка в пиксельном пространстве изображения.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointF: точка с дробными координатами (центры, подписи).
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add сдвигает точку на (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Sub возвращает покомпонентную разницу p - q.
func (p Point) Sub(q Point) (int, int) {
	return p.X - q.X, p.Y - q.Y
}

// Round округляет половину вверх (к +inf), как это делает браузерный Math.round.
// math.Round уводит -2.5 в -3, а указатель левее изображения должен давать -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Distance: евклидово расстояние между двумя точками.
func Distance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Abs для int.
func Abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
