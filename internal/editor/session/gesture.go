package session

import "imagemap-studio/internal/editor/geometry"

// ============================================================
// Pointer gestures
// ============================================================

// GestureHandler получает одну последовательность нажатие-движение-отпускание
// в координатах изображения, без привязки к поверхности отрисовки.
type GestureHandler interface {
	OnStart(p geometry.Point)
	OnMove(p geometry.Point)
	OnEnd(p geometry.Point)
	Name() string
}

// Gestures держит не более одного активного жеста.
// Пока жест активен, он получает все движения указателя.
type Gestures struct {
	active GestureHandler
}

// Begin запускает жест; если другой жест уже идет, вызов игнорируется.
func (g *Gestures) Begin(h GestureHandler, p geometry.Point) bool {
	if g.active != nil {
		return false
	}
	g.active = h
	h.OnStart(p)
	return true
}

// Move возвращает true, если движение поглощено активным жестом.
func (g *Gestures) Move(p geometry.Point) bool {
	if g.active == nil {
		return false
	}
	g.active.OnMove(p)
	return true
}

// End завершает активный жест. После вызова жестов нет в любом случае.
func (g *Gestures) End(p geometry.Point) bool {
	if g.active == nil {
		return false
	}
	h := g.active
	g.active = nil
	h.OnEnd(p)
	return true
}

// Cancel сбрасывает жест без вызова OnEnd.
func (g *Gestures) Cancel() {
	g.active = nil
}

func (g *Gestures) Active() bool {
	return g.active != nil
}

// Name возвращает имя активного жеста или "".
func (g *Gestures) Name() string {
	if g.active == nil {
		return ""
	}
	return g.active.Name()
}
