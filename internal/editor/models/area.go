package models

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// Map Area
// ============================================================

// Target: политика навигации (значение атрибута target).
type Target string

const (
	TargetBlank  Target = "_blank"
	TargetSelf   Target = "_self"
	TargetParent Target = "_parent"
	TargetTop    Target = "_top"
)

const DefaultHref = "https://"

// ParseTarget принимает только четыре стандартных значения.
func ParseTarget(s string) (Target, bool) {
	switch t := Target(s); t {
	case TargetBlank, TargetSelf, TargetParent, TargetTop:
		return t, true
	}
	return "", false
}

// MapArea: одна кликабельная область поверх изображения.
type MapArea struct {
	ID     string
	Shape  Shape
	Href   string
	Alt    string
	Title  string
	Target Target
}

// NewArea создает область с дефолтными метаданными и подписями "Area N".
func NewArea(id string, shape Shape, number int) MapArea {
	label := fmt.Sprintf("Area %d", number)
	return MapArea{
		ID:     id,
		Shape:  shape,
		Href:   DefaultHref,
		Alt:    label,
		Title:  label,
		Target: TargetBlank,
	}
}

func (a MapArea) Kind() ShapeKind {
	if a.Shape == nil {
		return ""
	}
	return a.Shape.Kind()
}

func (a MapArea) Coords() []int {
	if a.Shape == nil {
		return nil
	}
	return a.Shape.Coords()
}

type areaJSON struct {
	ID     string    `json:"id"`
	Shape  ShapeKind `json:"shape"`
	Coords []int     `json:"coords"`
	Href   string    `json:"href"`
	Alt    string    `json:"alt"`
	Title  string    `json:"title"`
	Target Target    `json:"target"`
}

func (a MapArea) MarshalJSON() ([]byte, error) {
	return json.Marshal(areaJSON{
		ID:     a.ID,
		Shape:  a.Kind(),
		Coords: a.Coords(),
		Href:   a.Href,
		Alt:    a.Alt,
		Title:  a.Title,
		Target: a.Target,
	})
}

func (a *MapArea) UnmarshalJSON(data []byte) error {
	var raw areaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	shape, err := ShapeFromCoords(raw.Shape, raw.Coords)
	if err != nil {
		return fmt.Errorf("area %s: %w", raw.ID, err)
	}
	*a = MapArea{
		ID:     raw.ID,
		Shape:  shape,
		Href:   raw.Href,
		Alt:    raw.Alt,
		Title:  raw.Title,
		Target: raw.Target,
	}
	return nil
}
