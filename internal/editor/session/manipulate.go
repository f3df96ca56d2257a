package session

import (
	"imagemap-studio/internal/editor/geometry"
	"imagemap-studio/internal/editor/models"
)

// ============================================================
// Manipulation Engine
// ============================================================

type areaGesture interface {
	areaID() string
}

func (s *Session) selectDown(ev PointerEvent) {
	switch ev.Target.Kind {
	case TargetHandle:
		area := s.doc.Area(ev.Target.AreaID)
		if area == nil {
			return
		}
		if ev.Target.Handle < 0 || ev.Target.Handle >= len(area.Shape.Handles()) {
			return
		}
		s.doc.ActiveID = area.ID
		s.gestures.Begin(&resizeGesture{s: s, id: area.ID, handle: ev.Target.Handle}, ev.Point)
	case TargetArea:
		area := s.doc.Area(ev.Target.AreaID)
		if area == nil {
			s.ClearSelection()
			return
		}
		s.doc.ActiveID = area.ID
		s.gestures.Begin(&moveGesture{s: s, id: area.ID, initial: area.Shape}, ev.Point)
	default:
		s.ClearSelection()
	}
}

// Handles возвращает ручки активной области (их видно только у выбранной).
func (s *Session) Handles() []geometry.Point {
	area := s.doc.Active()
	if area == nil || area.Shape == nil {
		return nil
	}
	return area.Shape.Handles()
}

// Gesture: имя активного жеста: "draw", "move", "resize" или "".
func (s *Session) Gesture() string { return s.gestures.Name() }

// moveGesture сдвигает все координаты на смещение указателя от точки нажатия.
// У круга радиус не сдвигается.
type moveGesture struct {
	s       *Session
	id      string
	start   geometry.Point
	initial models.Shape
}

func (g *moveGesture) Name() string   { return gestureMove }
func (g *moveGesture) areaID() string { return g.id }

func (g *moveGesture) OnStart(p geometry.Point) { g.start = p }

func (g *moveGesture) OnMove(p geometry.Point) {
	area := g.s.doc.Area(g.id)
	if area == nil {
		return
	}
	dx, dy := p.Sub(g.start)
	area.Shape = g.initial.Translate(dx, dy)
}

func (g *moveGesture) OnEnd(geometry.Point) {}

// resizeGesture тянет одну ручку.
type resizeGesture struct {
	s      *Session
	id     string
	handle int
}

func (g *resizeGesture) Name() string   { return gestureResize }
func (g *resizeGesture) areaID() string { return g.id }

func (g *resizeGesture) OnStart(geometry.Point) {}

func (g *resizeGesture) OnMove(p geometry.Point) {
	area := g.s.doc.Area(g.id)
	if area == nil {
		return
	}
	area.Shape = area.Shape.ResizeHandle(g.handle, p)
}

// OnEnd нормализует прямоугольник, перевернутый во время перетаскивания угла.
func (g *resizeGesture) OnEnd(geometry.Point) {
	area := g.s.doc.Area(g.id)
	if area == nil {
		return
	}
	if r, ok := area.Shape.(models.Rect); ok {
		area.Shape = r.Normalize()
	}
}

// ============================================================
// Context menu
// ============================================================

type MenuAction string

const (
	ActionEditProperties MenuAction = "edit"
	ActionDelete         MenuAction = "delete"
)

// ContextMenu: открытое контекстное меню области.
type ContextMenu struct {
	AreaID  string       `json:"area_id"`
	Actions []MenuAction `json:"actions"`
}

// ContextMenu выбирает область и открывает меню без запуска жеста.
func (s *Session) ContextMenu(id string) *ContextMenu {
	if s.gestures.Active() || !s.Select(id) {
		return nil
	}
	s.menu = &ContextMenu{
		AreaID:  id,
		Actions: []MenuAction{ActionEditProperties, ActionDelete},
	}
	return s.menu
}

// OpenMenu возвращает открытое меню или nil.
func (s *Session) OpenMenu() *ContextMenu { return s.menu }

func (s *Session) CloseContextMenu() { s.menu = nil }

// RunMenuAction выполняет пункт открытого меню и закрывает его.
func (s *Session) RunMenuAction(action MenuAction) bool {
	if s.menu == nil {
		return false
	}
	id := s.menu.AreaID
	s.menu = nil

	switch action {
	case ActionEditProperties:
		return s.OpenProperties(id)
	case ActionDelete:
		return s.Delete(id)
	}
	return false
}
