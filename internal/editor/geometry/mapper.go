package geometry

// ============================================================
// Coordinate Mapper
// ============================================================

// Rect: ограничивающий прямоугольник отображаемого изображения во viewport
// (то, что возвращает getBoundingClientRect, то есть уже с учетом zoom).
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Size: натуральный размер изображения в пикселях.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Mapper переводит координаты указателя в пиксели изображения.
type Mapper struct {
	Natural Size
}

func NewMapper(natural Size) *Mapper {
	return &Mapper{Natural: natural}
}

// ToIntrinsic: scale = natural / displayed по каждой оси,
// intrinsic = round((viewport - origin) * scale).
// Результат не обрезается границами изображения.
func (m *Mapper) ToIntrinsic(clientX, clientY float64, displayed Rect) Point {
	scaleX := axisScale(m.Natural.Width, displayed.Width)
	scaleY := axisScale(m.Natural.Height, displayed.Height)

	return Point{
		X: Round((clientX - displayed.Left) * scaleX),
		Y: Round((clientY - displayed.Top) * scaleY),
	}
}

// ToViewport: обратное преобразование (для отрисовки ручек поверх изображения).
func (m *Mapper) ToViewport(p Point, displayed Rect) PointF {
	scaleX := axisScale(m.Natural.Width, displayed.Width)
	scaleY := axisScale(m.Natural.Height, displayed.Height)

	return PointF{
		X: displayed.Left + float64(p.X)/scaleX,
		Y: displayed.Top + float64(p.Y)/scaleY,
	}
}

// axisScale treats an unknown or collapsed axis as 1:1.
func axisScale(natural int, displayed float64) float64 {
	if natural <= 0 || displayed <= 0 {
		return 1
	}
	return float64(natural) / displayed
}
