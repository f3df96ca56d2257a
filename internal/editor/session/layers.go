package session

import (
	"fmt"
	"unicode/utf8"

	"imagemap-studio/internal/editor/models"
)

// ============================================================
// Layer / Ordering Panel
// ============================================================

const summaryHrefLimit = 20

// LayerEntry: строка панели слоев. Index начинается с 1 и пересчитывается после
// каждой перестановки.
type LayerEntry struct {
	Index    int              `json:"index"`
	ID       string           `json:"id"`
	Kind     models.ShapeKind `json:"shape"`
	Summary  string           `json:"summary"`
	Active   bool             `json:"active"`
	Dragging bool             `json:"dragging"`
}

// Layers возвращает панель в порядке коллекции (последний рисуется сверху).
func (s *Session) Layers() []LayerEntry {
	entries := make([]LayerEntry, 0, len(s.doc.Areas))
	for i, area := range s.doc.Areas {
		entries = append(entries, LayerEntry{
			Index:    i + 1,
			ID:       area.ID,
			Kind:     area.Kind(),
			Summary:  summarize(area),
			Active:   area.ID == s.doc.ActiveID,
			Dragging: i == s.dragIndex,
		})
	}
	return entries
}

// Reorder вынимает элемент from и вставляет на позицию to.
// Совпадающие или невалидные индексы: no-op.
// Начатое перетаскивание строки сбрасывается: его индекс больше не указывает на ту же область.
func (s *Session) Reorder(from, to int) bool {
	if !s.doc.Move(from, to) {
		return false
	}
	s.dragIndex = -1
	return true
}

// BeginLayerDrag берет строку панели.
func (s *Session) BeginLayerDrag(index int) bool {
	if index < 0 || index >= len(s.doc.Areas) {
		return false
	}
	s.dragIndex = index
	return true
}

// LayerDragOver переставляет элемент при каждом наведении на новую строку,
// а не только при отпускании.
func (s *Session) LayerDragOver(index int) bool {
	if s.dragIndex < 0 || index == s.dragIndex {
		return false
	}
	if !s.doc.Move(s.dragIndex, index) {
		return false
	}
	s.dragIndex = index
	return true
}

func (s *Session) EndLayerDrag() {
	s.dragIndex = -1
}

// DragIndex: индекс перетаскиваемой строки или -1.
func (s *Session) DragIndex() int { return s.dragIndex }

func summarize(area models.MapArea) string {
	link := area.Href
	switch {
	case link == "":
		link = "no link"
	case utf8.RuneCountInString(link) > summaryHrefLimit:
		link = string([]rune(link)[:summaryHrefLimit]) + "..."
	}
	return fmt.Sprintf("%s: %s", area.Kind().Label(), link)
}
