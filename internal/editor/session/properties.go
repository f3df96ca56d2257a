package session

import (
	"fmt"

	"imagemap-studio/internal/editor/models"
	"imagemap-studio/internal/editor/parser"
)

// ============================================================
// Property Editor
// ============================================================

// OpenProperties открывает редактор свойств области (пункт меню "edit").
func (s *Session) OpenProperties(id string) bool {
	if !s.Select(id) {
		return false
	}
	s.editingID = id
	return true
}

func (s *Session) CloseProperties() {
	s.editingID = ""
}

// EditingID: область в открытом окне свойств.
func (s *Session) EditingID() string { return s.editingID }

// ApplyProperties ничего не фиксирует (правки уже в модели), только закрывает
// окно и снимает выбор.
func (s *Session) ApplyProperties() {
	s.editingID = ""
	s.ClearSelection()
}

// propertyTarget: область из окна свойств, иначе активная.
func (s *Session) propertyTarget() (*models.MapArea, error) {
	if s.editingID != "" {
		if area := s.doc.Area(s.editingID); area != nil {
			return area, nil
		}
	}
	if area := s.doc.Active(); area != nil {
		return area, nil
	}
	return nil, ErrNoActiveArea
}

func (s *Session) SetLinkTarget(href string) error {
	area, err := s.propertyTarget()
	if err != nil {
		return err
	}
	area.Href = href
	return nil
}

func (s *Session) SetAltText(alt string) error {
	area, err := s.propertyTarget()
	if err != nil {
		return err
	}
	area.Alt = alt
	return nil
}

func (s *Session) SetTitleText(title string) error {
	area, err := s.propertyTarget()
	if err != nil {
		return err
	}
	area.Title = title
	return nil
}

func (s *Session) SetNavigationPolicy(target models.Target) error {
	area, err := s.propertyTarget()
	if err != nil {
		return err
	}
	area.Target = target
	return nil
}

// SetCoordinates заменяет координаты целиком. Нечисловые токены становятся 0;
// список, не подходящий по арности к виду фигуры, отклоняется без изменений.
func (s *Session) SetCoordinates(raw string) error {
	area, err := s.propertyTarget()
	if err != nil {
		return err
	}

	shape, err := models.ShapeFromCoords(area.Kind(), parser.ParseCoords(raw))
	if err != nil {
		return fmt.Errorf("area %s: %w", area.ID, err)
	}
	area.Shape = shape
	return nil
}
