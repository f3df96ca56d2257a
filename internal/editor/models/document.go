package models

import "imagemap-studio/internal/editor/geometry"

// ============================================================
// Document
// ============================================================

type Tool string

const (
	ToolSelect Tool = "select"
	ToolRect   Tool = "rect"
	ToolCircle Tool = "circle"
	ToolPoly   Tool = "poly"
)

// ParseTool разбирает имя инструмента.
func ParseTool(s string) (Tool, bool) {
	switch t := Tool(s); t {
	case ToolSelect, ToolRect, ToolCircle, ToolPoly:
		return t, true
	}
	return "", false
}

// ShapeKind возвращает вид фигуры, которую рисует инструмент.
func (t Tool) ShapeKind() (ShapeKind, bool) {
	switch t {
	case ToolRect:
		return ShapeRect, true
	case ToolCircle:
		return ShapeCircle, true
	case ToolPoly:
		return ShapePoly, true
	}
	return "", false
}

type ImageSource string

const (
	SourceUpload ImageSource = "upload"
	SourceURL    ImageSource = "url"
)

// ImageRef: ссылка на фоновое изображение. После загрузки не перепроверяется.
type ImageRef struct {
	Source   ImageSource `json:"source"`
	URL      string      `json:"url,omitempty"`
	FileName string      `json:"file_name,omitempty"`
	Width    int         `json:"width"`
	Height   int         `json:"height"`
}

func (r ImageRef) Size() geometry.Size {
	return geometry.Size{Width: r.Width, Height: r.Height}
}

const (
	DefaultMapName = "workmap"
	DefaultZoom    = 1.0
)

// Document: все редактируемое состояние одного редактора.
type Document struct {
	Image    *ImageRef `json:"image"`
	MapName  string    `json:"map_name"`
	Areas    []MapArea `json:"areas"`
	ActiveID string    `json:"active_id,omitempty"`
	Tool     Tool      `json:"tool"`
	Zoom     float64   `json:"zoom"`
}

func NewDocument() *Document {
	return &Document{
		MapName: DefaultMapName,
		Areas:   []MapArea{},
		Tool:    ToolRect,
		Zoom:    DefaultZoom,
	}
}

// Index возвращает позицию области или -1.
func (d *Document) Index(id string) int {
	for i := range d.Areas {
		if d.Areas[i].ID == id {
			return i
		}
	}
	return -1
}

// Area возвращает указатель на область внутри коллекции.
func (d *Document) Area(id string) *MapArea {
	if i := d.Index(id); i >= 0 {
		return &d.Areas[i]
	}
	return nil
}

// Active возвращает выбранную область или nil.
func (d *Document) Active() *MapArea {
	if d.ActiveID == "" {
		return nil
	}
	return d.Area(d.ActiveID)
}

func (d *Document) Append(area MapArea) {
	d.Areas = append(d.Areas, area)
}

// Remove удаляет область; выбор сбрасывается только если удалена активная.
func (d *Document) Remove(id string) bool {
	i := d.Index(id)
	if i < 0 {
		return false
	}
	d.Areas = append(d.Areas[:i], d.Areas[i+1:]...)
	if d.ActiveID == id {
		d.ActiveID = ""
	}
	return true
}

// Move вынимает элемент from и вставляет его на позицию to.
func (d *Document) Move(from, to int) bool {
	n := len(d.Areas)
	if from == to || from < 0 || to < 0 || from >= n || to >= n {
		return false
	}
	item := d.Areas[from]
	d.Areas = append(d.Areas[:from], d.Areas[from+1:]...)
	d.Areas = append(d.Areas[:to], append([]MapArea{item}, d.Areas[to:]...)...)
	return true
}

// Clear сбрасывает области и выбор.
func (d *Document) Clear() {
	d.Areas = []MapArea{}
	d.ActiveID = ""
}

// Draft: незавершенная фигура (предпросмотр), в коллекцию не входит.
type Draft struct {
	Kind   ShapeKind `json:"shape"`
	Coords []int     `json:"coords"`
}
