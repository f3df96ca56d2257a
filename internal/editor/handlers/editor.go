package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"imagemap-studio/internal/editor/geometry"
	"imagemap-studio/internal/editor/markup"
	"imagemap-studio/internal/editor/models"
	"imagemap-studio/internal/editor/overlay"
	"imagemap-studio/internal/editor/parser"
	"imagemap-studio/internal/editor/repository"
	"imagemap-studio/internal/editor/service"
	"imagemap-studio/internal/editor/session"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Editor Handler
// ============================================================

// ExportArchive хранит скачанные варианты разметки.
type ExportArchive interface {
	Save(ctx context.Context, sessionID, mapName string, areaCount int, markup string) (*repository.Export, error)
	List(ctx context.Context, limit int) ([]repository.Export, error)
	GetByID(ctx context.Context, id string) (*repository.Export, error)
}

// Limits ограничивает размеры изображений, которые принимает и рисует редактор.
type Limits struct {
	MaxImagePixels   int
	MaxOverlayPixels int
}

type EditorHandler struct {
	store    *service.Store
	images   *service.ImageStorage
	exports  ExportArchive
	renderer *markup.Renderer
	limits   Limits
}

func NewEditorHandler(store *service.Store, images *service.ImageStorage, exports ExportArchive, limits Limits) *EditorHandler {
	return &EditorHandler{
		store:    store,
		images:   images,
		exports:  exports,
		renderer: markup.NewRenderer(),
		limits:   limits,
	}
}

var errAreaNotFound = errors.New("area not found")

// checkImageSize: размеры должны быть положительными и в пределах MaxImagePixels.
func (h *EditorHandler) checkImageSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fiber.NewError(http.StatusBadRequest, "image width and height must be positive")
	}
	if h.limits.MaxImagePixels > 0 && float64(width)*float64(height) > float64(h.limits.MaxImagePixels) {
		return fiber.NewError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("image %dx%d exceeds %d pixels", width, height, h.limits.MaxImagePixels))
	}
	return nil
}

// ============================================================
// Sessions
// ============================================================

// CreateSession заводит новый редактор.
func (h *EditorHandler) CreateSession(c fiber.Ctx) error {
	id := h.store.Create()
	slog.Info("[EDITOR] session created", "session", id)

	var snap session.Snapshot
	if err := h.store.Do(id, func(s *session.Session) error {
		snap = s.Snapshot()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":      id,
		"session": snap,
	})
}

// GetSession отдает текущее состояние редактора.
func (h *EditorHandler) GetSession(c fiber.Ctx) error {
	return h.mutate(c, func(*session.Session) error { return nil })
}

// DeleteSession удаляет редактор вместе с загруженным изображением.
func (h *EditorHandler) DeleteSession(c fiber.Ctx) error {
	id := c.Params("id")
	if !h.store.Delete(id) {
		return h.fail(c, service.ErrSessionNotFound)
	}
	if err := h.images.Remove(id); err != nil {
		slog.Warn("[STORAGE] remove session images", "session", id, "error", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Image source
// ============================================================

// UploadImage принимает файл изображения и сбрасывает документ.
func (h *EditorHandler) UploadImage(c fiber.Ctx) error {
	id := c.Params("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "file required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	width, height, format, err := service.DecodeSize(data)
	if err != nil {
		slog.Info("[EDITOR] rejected upload", "session", id, "file", fileHeader.Filename, "error", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unsupported image"})
	}
	if err := h.checkImageSize(width, height); err != nil {
		slog.Info("[EDITOR] rejected upload", "session", id, "width", width, "height", height)
		return h.fail(c, err)
	}

	return h.mutate(c, func(s *session.Session) error {
		if _, err := h.images.Save(id, fileHeader.Filename, data); err != nil {
			slog.Error("[STORAGE] save image", "session", id, "error", err)
			return fiber.NewError(http.StatusInternalServerError, "failed to save file")
		}
		s.LoadImage(models.ImageRef{
			Source:   models.SourceUpload,
			FileName: fileHeader.Filename,
			Width:    width,
			Height:   height,
		})
		slog.Info("[EDITOR] image uploaded", "session", id, "format", format, "width", width, "height", height)
		return nil
	})
}

type imageURLRequest struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// LoadImageURL подключает изображение по ссылке. Ссылка не скачивается,
// натуральный размер сообщает фронтенд после загрузки картинки.
func (h *EditorHandler) LoadImageURL(c fiber.Ctx) error {
	var req imageURLRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.URL == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "url required"})
	}
	if err := h.checkImageSize(req.Width, req.Height); err != nil {
		return h.fail(c, err)
	}

	id := c.Params("id")
	return h.mutate(c, func(s *session.Session) error {
		if err := h.images.Remove(id); err != nil {
			slog.Warn("[STORAGE] remove previous image", "session", id, "error", err)
		}
		s.LoadImage(models.ImageRef{
			Source: models.SourceURL,
			URL:    req.URL,
			Width:  req.Width,
			Height: req.Height,
		})
		return nil
	})
}

// GetImage отдает загруженный файл.
func (h *EditorHandler) GetImage(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.Do(id, func(*session.Session) error { return nil }); err != nil {
		return h.fail(c, err)
	}

	path, err := h.images.Path(id)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "image not found"})
	}
	return c.SendFile(path)
}

// Reset очищает изображение и все области.
func (h *EditorHandler) Reset(c fiber.Ctx) error {
	id := c.Params("id")
	return h.mutate(c, func(s *session.Session) error {
		s.Reset()
		if err := h.images.Remove(id); err != nil {
			slog.Warn("[STORAGE] remove image on reset", "session", id, "error", err)
		}
		return nil
	})
}

// ============================================================
// Tools & view
// ============================================================

type valueRequest struct {
	Value string `json:"value"`
}

func (h *EditorHandler) SetTool(c fiber.Ctx) error {
	var req valueRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	tool, ok := models.ParseTool(req.Value)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown tool"})
	}
	return h.mutate(c, func(s *session.Session) error {
		s.SetTool(tool)
		return nil
	})
}

func (h *EditorHandler) SetMethod(c fiber.Ctx) error {
	var req valueRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	method, ok := session.ParseCreationMethod(req.Value)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown creation method"})
	}
	return h.mutate(c, func(s *session.Session) error {
		s.SetCreationMethod(method)
		return nil
	})
}

func (h *EditorHandler) SetView(c fiber.Ctx) error {
	var req valueRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	view, ok := session.ParseViewMode(req.Value)
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown view mode"})
	}
	return h.mutate(c, func(s *session.Session) error {
		s.SetViewMode(view)
		return nil
	})
}

func (h *EditorHandler) SetMapName(c fiber.Ctx) error {
	var req valueRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		s.SetMapName(req.Value)
		return nil
	})
}

type zoomRequest struct {
	Zoom   *float64 `json:"zoom"`
	Action string   `json:"action"` // "in" | "out"
}

func (h *EditorHandler) SetZoom(c fiber.Ctx) error {
	var req zoomRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		switch {
		case req.Action == "in":
			s.ZoomIn()
		case req.Action == "out":
			s.ZoomOut()
		case req.Zoom != nil:
			s.SetZoom(*req.Zoom)
		default:
			return fiber.NewError(http.StatusBadRequest, "zoom or action required")
		}
		return nil
	})
}

// ============================================================
// Pointer input
// ============================================================

type pointerRequest struct {
	Type     string           `json:"type"` // down | move | up | context
	Point    *geometry.Point  `json:"point"`
	Viewport *geometry.PointF `json:"viewport"`
	Bounds   *geometry.Rect   `json:"bounds"`
	Target   session.Target   `json:"target"`
}

// Pointer прогоняет событие указателя через машину состояний сессии.
func (h *EditorHandler) Pointer(c fiber.Ctx) error {
	var req pointerRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	if req.Point == nil && (req.Viewport == nil || req.Bounds == nil) {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "point or viewport with bounds required"})
	}

	return h.mutate(c, func(s *session.Session) error {
		ev := session.PointerEvent{Target: req.Target}
		if req.Point != nil {
			ev.Point = *req.Point
		} else {
			var natural geometry.Size
			if img := s.Document().Image; img != nil {
				natural = img.Size()
			}
			ev.Point = geometry.NewMapper(natural).ToIntrinsic(req.Viewport.X, req.Viewport.Y, *req.Bounds)
		}

		switch req.Type {
		case "down":
			s.PointerDown(ev)
		case "move":
			s.PointerMove(ev)
		case "up":
			s.PointerUp(ev)
		case "context":
			if s.ContextMenu(req.Target.AreaID) == nil {
				return errAreaNotFound
			}
		default:
			return fiber.NewError(http.StatusBadRequest, "unknown pointer event type")
		}
		return nil
	})
}

// FinishPolygon фиксирует многоугольник; меньше трех вершин: без изменений.
func (h *EditorHandler) FinishPolygon(c fiber.Ctx) error {
	var committed bool
	var snap session.Snapshot
	err := h.store.Do(c.Params("id"), func(s *session.Session) error {
		committed = s.FinishPolygon()
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"committed": committed,
		"session":   snap,
	})
}

// ============================================================
// Selection & properties
// ============================================================

type selectRequest struct {
	ID string `json:"id"`
}

func (h *EditorHandler) Select(c fiber.Ctx) error {
	var req selectRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		if !s.Select(req.ID) {
			return errAreaNotFound
		}
		return nil
	})
}

func (h *EditorHandler) ClearSelection(c fiber.Ctx) error {
	return h.mutate(c, func(s *session.Session) error {
		s.ClearSelection()
		return nil
	})
}

type areaPatchRequest struct {
	Href   *string `json:"href"`
	Alt    *string `json:"alt"`
	Title  *string `json:"title"`
	Target *string `json:"target"`
	Coords *string `json:"coords"`
}

// UpdateArea правит поля области напрямую, без черновика.
// Координаты проверяются первыми: при ошибке не меняется ничего.
func (h *EditorHandler) UpdateArea(c fiber.Ctx) error {
	var req areaPatchRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}

	var target models.Target
	if req.Target != nil {
		t, ok := models.ParseTarget(*req.Target)
		if !ok {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown target"})
		}
		target = t
	}

	areaID := c.Params("areaId")
	return h.mutate(c, func(s *session.Session) error {
		area := s.Document().Area(areaID)
		if area == nil {
			return errAreaNotFound
		}
		if req.Coords != nil {
			if _, err := models.ShapeFromCoords(area.Kind(), parser.ParseCoords(*req.Coords)); err != nil {
				return fmt.Errorf("area %s: %w", areaID, err)
			}
		}

		s.Select(areaID)
		if s.EditingID() != "" && s.EditingID() != areaID {
			s.CloseProperties()
		}

		if req.Coords != nil {
			if err := s.SetCoordinates(*req.Coords); err != nil {
				return err
			}
		}
		if req.Href != nil {
			if err := s.SetLinkTarget(*req.Href); err != nil {
				return err
			}
		}
		if req.Alt != nil {
			if err := s.SetAltText(*req.Alt); err != nil {
				return err
			}
		}
		if req.Title != nil {
			if err := s.SetTitleText(*req.Title); err != nil {
				return err
			}
		}
		if req.Target != nil {
			if err := s.SetNavigationPolicy(target); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *EditorHandler) DeleteArea(c fiber.Ctx) error {
	areaID := c.Params("areaId")
	return h.mutate(c, func(s *session.Session) error {
		if !s.Delete(areaID) {
			return errAreaNotFound
		}
		return nil
	})
}

func (h *EditorHandler) OpenProperties(c fiber.Ctx) error {
	var req selectRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		if !s.OpenProperties(req.ID) {
			return errAreaNotFound
		}
		return nil
	})
}

func (h *EditorHandler) CloseProperties(c fiber.Ctx) error {
	return h.mutate(c, func(s *session.Session) error {
		s.CloseProperties()
		return nil
	})
}

// ApplyProperties закрывает окно свойств и снимает выбор.
func (h *EditorHandler) ApplyProperties(c fiber.Ctx) error {
	return h.mutate(c, func(s *session.Session) error {
		s.ApplyProperties()
		return nil
	})
}

type menuActionRequest struct {
	Action string `json:"action"`
}

func (h *EditorHandler) ContextMenuAction(c fiber.Ctx) error {
	var req menuActionRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		if s.OpenMenu() == nil {
			return fiber.NewError(http.StatusConflict, "no context menu open")
		}
		if !s.RunMenuAction(session.MenuAction(req.Action)) {
			return fiber.NewError(http.StatusBadRequest, "unknown menu action")
		}
		return nil
	})
}

func (h *EditorHandler) CloseContextMenu(c fiber.Ctx) error {
	return h.mutate(c, func(s *session.Session) error {
		s.CloseContextMenu()
		return nil
	})
}

// ============================================================
// Layers
// ============================================================

func (h *EditorHandler) Layers(c fiber.Ctx) error {
	var layers []session.LayerEntry
	if err := h.store.Do(c.Params("id"), func(s *session.Session) error {
		layers = s.Layers()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(layers)
}

type reorderRequest struct {
	From  int `json:"from"`
	To    int `json:"to"`
	Index int `json:"index"`
}

// Reorder переносит слой from на позицию to. Перенос на себя: no-op.
func (h *EditorHandler) Reorder(c fiber.Ctx) error {
	var req reorderRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		s.Reorder(req.From, req.To)
		return nil
	})
}

func (h *EditorHandler) LayerDragStart(c fiber.Ctx) error {
	var req reorderRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		if !s.BeginLayerDrag(req.Index) {
			return fiber.NewError(http.StatusBadRequest, "layer index out of range")
		}
		return nil
	})
}

func (h *EditorHandler) LayerDragOver(c fiber.Ctx) error {
	var req reorderRequest
	if err := decode(c, &req); err != nil {
		return h.fail(c, err)
	}
	return h.mutate(c, func(s *session.Session) error {
		s.LayerDragOver(req.Index)
		return nil
	})
}

func (h *EditorHandler) LayerDragEnd(c fiber.Ctx) error {
	return h.mutate(c, func(s *session.Session) error {
		s.EndLayerDrag()
		return nil
	})
}

// ============================================================
// Output
// ============================================================

// Code отдает сгенерированную разметку.
func (h *EditorHandler) Code(c fiber.Ctx) error {
	code, _, err := h.generate(c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(code)
}

// Download отдает разметку файлом <mapName>.html и пишет выгрузку в архив.
func (h *EditorHandler) Download(c fiber.Ctx) error {
	id := c.Params("id")
	code, doc, err := h.generate(id)
	if err != nil {
		return h.fail(c, err)
	}

	if h.exports != nil {
		if _, err := h.exports.Save(c.Context(), id, doc.MapName, len(doc.Areas), code); err != nil {
			slog.Error("[EXPORT] archive download", "session", id, "error", err)
		}
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, markup.DownloadName(doc.MapName)))
	return c.SendString(code)
}

// Overlay рисует области поверх изображения в текущем масштабе.
func (h *EditorHandler) Overlay(c fiber.Ctx) error {
	id := c.Params("id")

	var snap session.Snapshot
	if err := h.store.Do(id, func(s *session.Session) error {
		if !s.HasImage() {
			return session.ErrNoImage
		}
		snap = s.Snapshot()
		return nil
	}); err != nil {
		return h.fail(c, err)
	}

	background := decodeBackground(h.images, id, snap.Document.Image)
	img, err := overlay.Render(overlay.Layer{
		Doc:       &snap.Document,
		Draft:     snap.Draft,
		Handles:   snap.Handles,
		MaxPixels: h.limits.MaxOverlayPixels,
	}, background)
	if err != nil {
		switch {
		case errors.Is(err, overlay.ErrNoCanvas):
			return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "image size unknown"})
		case errors.Is(err, overlay.ErrCanvasTooLarge):
			slog.Info("[EDITOR] overlay too large", "session", id, "error", err)
			return c.Status(http.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "overlay too large, lower the zoom"})
		}
		return h.fail(c, err)
	}

	var buf bytes.Buffer
	if err := overlay.EncodePNG(&buf, img); err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

// ============================================================
// Export archive
// ============================================================

// noArchive: сервис поднят без базы выгрузок.
func (h *EditorHandler) noArchive(c fiber.Ctx) error {
	return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "export archive unavailable"})
}

func (h *EditorHandler) ListExports(c fiber.Ctx) error {
	if h.exports == nil {
		return h.noArchive(c)
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.exports.List(c.Context(), limit)
	if err != nil {
		slog.Error("[EXPORT] list", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list exports"})
	}
	return c.JSON(list)
}

func (h *EditorHandler) GetExport(c fiber.Ctx) error {
	if h.exports == nil {
		return h.noArchive(c)
	}
	export, err := h.exports.GetByID(c.Context(), c.Params("exportId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "export not found"})
		}
		slog.Error("[EXPORT] get", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read export"})
	}
	return c.JSON(export)
}

// ============================================================
// Helpers
// ============================================================

// mutate выполняет fn под блокировкой сессии и отвечает снимком состояния.
func (h *EditorHandler) mutate(c fiber.Ctx, fn func(*session.Session) error) error {
	var snap session.Snapshot
	err := h.store.Do(c.Params("id"), func(s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(snap)
}

func (h *EditorHandler) generate(id string) (string, *models.Document, error) {
	var snap session.Snapshot
	if err := h.store.Do(id, func(s *session.Session) error {
		snap = s.Snapshot()
		return nil
	}); err != nil {
		return "", nil, err
	}

	code, err := h.renderer.Render(&snap.Document)
	if err != nil {
		return "", nil, err
	}
	return code, &snap.Document, nil
}

func (h *EditorHandler) fail(c fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	case errors.Is(err, service.ErrSessionNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "session not found"})
	case errors.Is(err, errAreaNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "area not found"})
	case errors.Is(err, session.ErrNoImage):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "no image loaded"})
	case errors.Is(err, session.ErrNoActiveArea):
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": "no active area"})
	case errors.Is(err, models.ErrCoordArity),
		errors.Is(err, models.ErrNegativeRadius),
		errors.Is(err, models.ErrUnknownShape):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	slog.Error("[EDITOR] request failed", "path", c.Path(), "error", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func decode(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return fiber.NewError(http.StatusBadRequest, "empty body")
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid json")
	}
	return nil
}

// decodeBackground: фон для оверлея. Для ссылок и битых файлов nil,
// тогда оверлей рисует на пустом холсте натурального размера.
func decodeBackground(images *service.ImageStorage, id string, ref *models.ImageRef) image.Image {
	if ref == nil || ref.Source != models.SourceUpload {
		return nil
	}
	img, err := images.Load(id)
	if err != nil {
		slog.Warn("[STORAGE] load background", "session", id, "error", err)
		return nil
	}
	return img
}
