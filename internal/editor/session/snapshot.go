package session

import (
	"imagemap-studio/internal/editor/geometry"
	"imagemap-studio/internal/editor/models"
)

// ============================================================
// Snapshot
// ============================================================

// Snapshot: копия состояния для фронтенда и рендеров; с сессией не разделяет памяти.
type Snapshot struct {
	Document    models.Document  `json:"document"`
	Method      CreationMethod   `json:"method"`
	View        ViewMode         `json:"view"`
	Draft       *models.Draft    `json:"draft,omitempty"`
	Layers      []LayerEntry     `json:"layers"`
	Handles     []geometry.Point `json:"handles,omitempty"`
	ContextMenu *ContextMenu     `json:"context_menu,omitempty"`
	EditingID   string           `json:"editing_id,omitempty"`
	Gesture     string           `json:"gesture,omitempty"`
}

func (s *Session) Snapshot() Snapshot {
	doc := *s.doc
	doc.Areas = make([]models.MapArea, len(s.doc.Areas))
	copy(doc.Areas, s.doc.Areas)
	if s.doc.Image != nil {
		img := *s.doc.Image
		doc.Image = &img
	}

	var menu *ContextMenu
	if s.menu != nil {
		m := *s.menu
		menu = &m
	}

	return Snapshot{
		Document:    doc,
		Method:      s.method,
		View:        s.view,
		Draft:       s.Draft(),
		Layers:      s.Layers(),
		Handles:     s.Handles(),
		ContextMenu: menu,
		EditingID:   s.editingID,
		Gesture:     s.gestures.Name(),
	}
}
