package session

import (
	"imagemap-studio/internal/editor/geometry"
	"imagemap-studio/internal/editor/models"
)

// ============================================================
// Pointer input
// ============================================================

type TargetKind string

const (
	TargetCanvas TargetKind = "canvas"
	TargetArea   TargetKind = "area"
	TargetHandle TargetKind = "handle"
)

// Target: элемент, на который пришлось нажатие (тело фигуры или ее ручка).
type Target struct {
	Kind   TargetKind `json:"kind"`
	AreaID string     `json:"area_id,omitempty"`
	Handle int        `json:"handle,omitempty"`
}

// PointerEvent: событие указателя в координатах изображения.
type PointerEvent struct {
	Point  geometry.Point
	Target Target
}

// PointerDown обрабатывает нажатие: выбор/перемещение/ресайз в режиме select,
// иначе рисование текущим инструментом.
func (s *Session) PointerDown(ev PointerEvent) {
	s.menu = nil
	if !s.HasImage() || s.view == ViewCode || s.gestures.Active() {
		return
	}

	switch s.doc.Tool {
	case models.ToolSelect:
		s.selectDown(ev)
	case models.ToolPoly:
		s.pending = append(s.pending, ev.Point)
	case models.ToolRect, models.ToolCircle:
		if s.method == MethodDrag {
			s.gestures.Begin(&drawGesture{s: s}, ev.Point)
			return
		}
		if !s.placing {
			s.startPlacing(ev.Point)
			return
		}
		s.completeShape(ev.Point)
	}
}

// PointerMove ведет активный жест либо обновляет предпросмотр click-черновика.
func (s *Session) PointerMove(ev PointerEvent) {
	if s.gestures.Move(ev.Point) {
		return
	}
	if s.placing {
		s.current = ev.Point
	}
}

// PointerUp: единственная точка завершения перемещения и ресайза.
func (s *Session) PointerUp(ev PointerEvent) {
	s.gestures.End(ev.Point)
}

// ============================================================
// Drawing State Machine
// ============================================================

// FinishPolygon фиксирует накопленные вершины. Меньше трех точек: no-op.
func (s *Session) FinishPolygon() bool {
	if len(s.pending) < 3 {
		return false
	}

	points := make([]geometry.Point, len(s.pending))
	copy(points, s.pending)
	s.commit(models.Polygon{Points: points})
	s.pending = nil
	return true
}

// Draft возвращает предпросмотр незавершенной фигуры или nil.
func (s *Session) Draft() *models.Draft {
	if len(s.pending) > 0 {
		return &models.Draft{
			Kind:   models.ShapePoly,
			Coords: models.Polygon{Points: s.pending}.Coords(),
		}
	}
	if !s.placing {
		return nil
	}
	kind, ok := s.doc.Tool.ShapeKind()
	if !ok {
		return nil
	}
	return &models.Draft{Kind: kind, Coords: s.draftShape(kind).Coords()}
}

// Placing сообщает, зафиксирован ли первый угол/центр черновика.
func (s *Session) Placing() bool { return s.placing }

// PendingPoints: вершины многоугольника, ожидающие FinishPolygon.
func (s *Session) PendingPoints() []geometry.Point {
	out := make([]geometry.Point, len(s.pending))
	copy(out, s.pending)
	return out
}

func (s *Session) startPlacing(p geometry.Point) {
	s.placing = true
	s.start = p
	s.current = p
}

func (s *Session) discardDraft() {
	s.placing = false
	s.pending = nil
	if s.gestures.Name() == gestureDraw {
		s.gestures.Cancel()
	}
}

func (s *Session) draftShape(kind models.ShapeKind) models.Shape {
	if kind == models.ShapeCircle {
		r := geometry.Round(geometry.Distance(s.current, s.start))
		return models.Circle{CX: s.start.X, CY: s.start.Y, R: r}
	}
	return models.NewRect(s.start, s.current)
}

// completeShape завершает прямоугольник/круг; слишком маленькие отбрасываются молча.
func (s *Session) completeShape(end geometry.Point) {
	if !s.placing {
		return
	}
	s.placing = false
	s.current = end

	kind, ok := s.doc.Tool.ShapeKind()
	if !ok || kind == models.ShapePoly {
		return
	}

	shape := s.draftShape(kind)
	switch sh := shape.(type) {
	case models.Rect:
		if sh.Width() < MinShapeSize || sh.Height() < MinShapeSize {
			return
		}
	case models.Circle:
		if sh.R < MinShapeSize {
			return
		}
	}

	s.commit(shape)
}

func (s *Session) commit(shape models.Shape) {
	area := models.NewArea(s.newID(), shape, len(s.doc.Areas)+1)
	s.doc.Append(area)
	s.doc.ActiveID = area.ID
}

// ============================================================
// Draw gesture (drag method)
// ============================================================

const (
	gestureDraw   = "draw"
	gestureMove   = "move"
	gestureResize = "resize"
)

type drawGesture struct {
	s *Session
}

func (g *drawGesture) Name() string { return gestureDraw }

func (g *drawGesture) OnStart(p geometry.Point) { g.s.startPlacing(p) }

func (g *drawGesture) OnMove(p geometry.Point) { g.s.current = p }

func (g *drawGesture) OnEnd(p geometry.Point) { g.s.completeShape(p) }
