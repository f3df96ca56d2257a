package session

import (
	"errors"
	"math"

	"imagemap-studio/internal/editor/geometry"
	"imagemap-studio/internal/editor/models"

	"github.com/google/uuid"
)

// ============================================================
// Editor Session
// ============================================================

type CreationMethod string

const (
	MethodDrag  CreationMethod = "drag"
	MethodClick CreationMethod = "click"
)

func ParseCreationMethod(s string) (CreationMethod, bool) {
	switch m := CreationMethod(s); m {
	case MethodDrag, MethodClick:
		return m, true
	}
	return "", false
}

type ViewMode string

const (
	ViewEdit ViewMode = "edit"
	ViewCode ViewMode = "code"
)

func ParseViewMode(s string) (ViewMode, bool) {
	switch v := ViewMode(s); v {
	case ViewEdit, ViewCode:
		return v, true
	}
	return "", false
}

const (
	MinZoom  = 0.1
	MaxZoom  = 3.0
	ZoomStep = 0.1

	// MinShapeSize: минимальный размер прямоугольника по каждой оси и радиус круга.
	MinShapeSize = 5
)

var (
	ErrNoActiveArea = errors.New("no active area")
	ErrNoImage      = errors.New("no image loaded")
)

// Session: состояние одного редактора: документ, инструмент, черновик и жесты.
// Не потокобезопасна, вызовы сериализует владелец.
type Session struct {
	doc    *models.Document
	method CreationMethod
	view   ViewMode
	newID  func() string

	gestures Gestures

	// черновик прямоугольника/круга
	placing bool
	start   geometry.Point
	current geometry.Point

	// вершины незавершенного многоугольника
	pending []geometry.Point

	menu      *ContextMenu
	editingID string
	dragIndex int
}

// Option настраивает Session при создании.
type Option func(*Session)

// WithIDGenerator подменяет генератор идентификаторов областей.
func WithIDGenerator(fn func() string) Option { return func(s *Session) { s.newID = fn } }

// WithCreationMethod задает способ рисования прямоугольников и кругов.
func WithCreationMethod(m CreationMethod) Option { return func(s *Session) { s.method = m } }

// WithMapName задает имя карты.
func WithMapName(name string) Option { return func(s *Session) { s.doc.MapName = name } }

func New(opts ...Option) *Session {
	s := &Session{
		doc:       models.NewDocument(),
		method:    MethodDrag,
		view:      ViewEdit,
		newID:     uuid.NewString,
		dragIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Document отдает документ напрямую; вызывающий не должен хранить ссылку дольше вызова.
func (s *Session) Document() *models.Document { return s.doc }

func (s *Session) Method() CreationMethod { return s.method }

func (s *Session) View() ViewMode { return s.view }

func (s *Session) HasImage() bool { return s.doc.Image != nil }

// ============================================================
// Image lifecycle
// ============================================================

// LoadImage подключает новое изображение и полностью сбрасывает документ.
// Пустой URL игнорируется.
func (s *Session) LoadImage(ref models.ImageRef) bool {
	if ref.Source == models.SourceURL && ref.URL == "" {
		return false
	}
	s.resetState()
	img := ref
	s.doc.Image = &img
	return true
}

// Reset убирает изображение и все области.
func (s *Session) Reset() {
	s.resetState()
	s.doc.Image = nil
}

func (s *Session) resetState() {
	s.doc.Clear()
	s.discardDraft()
	s.gestures.Cancel()
	s.menu = nil
	s.editingID = ""
	s.dragIndex = -1
}

// ============================================================
// Tools & view
// ============================================================

// SetTool переключает инструмент; незавершенный черновик выбрасывается.
func (s *Session) SetTool(tool models.Tool) {
	s.doc.Tool = tool
	s.discardDraft()
}

// SetCreationMethod переключает drag/click; черновик тоже выбрасывается.
func (s *Session) SetCreationMethod(m CreationMethod) {
	s.method = m
	s.discardDraft()
}

func (s *Session) SetViewMode(v ViewMode) {
	s.view = v
}

func (s *Session) SetMapName(name string) {
	s.doc.MapName = name
}

func (s *Session) ZoomIn() float64 {
	return s.SetZoom(s.doc.Zoom + ZoomStep)
}

func (s *Session) ZoomOut() float64 {
	return s.SetZoom(s.doc.Zoom - ZoomStep)
}

// SetZoom ограничивает масштаб диапазоном [MinZoom, MaxZoom] с шагом в одну десятую.
func (s *Session) SetZoom(z float64) float64 {
	if math.IsNaN(z) {
		return s.doc.Zoom
	}
	z = math.Round(z*10) / 10
	s.doc.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
	return s.doc.Zoom
}

// ============================================================
// Selection
// ============================================================

// Select делает область активной. Неизвестный id ничего не меняет.
func (s *Session) Select(id string) bool {
	if s.doc.Area(id) == nil {
		return false
	}
	s.doc.ActiveID = id
	return true
}

func (s *Session) ClearSelection() {
	s.doc.ActiveID = ""
}

// Delete удаляет область. Выбор сбрасывается только если удалена активная.
func (s *Session) Delete(id string) bool {
	if !s.doc.Remove(id) {
		return false
	}
	if s.editingID == id {
		s.editingID = ""
	}
	if s.menu != nil && s.menu.AreaID == id {
		s.menu = nil
	}
	if g, ok := s.gestures.active.(areaGesture); ok && g.areaID() == id {
		s.gestures.Cancel()
	}
	s.dragIndex = -1
	return true
}
