// Package overlay rasterizes the editor overlay (areas, badges, handles, draft)
// over the background image at the current zoom.
package overlay

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"imagemap-studio/internal/editor/geometry"
	"imagemap-studio/internal/editor/models"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

var (
	ErrNoCanvas       = errors.New("overlay: no image size to draw on")
	ErrCanvasTooLarge = errors.New("overlay: canvas exceeds pixel limit")
)

// DefaultMaxPixels caps the zoomed canvas when Layer.MaxPixels is zero.
const DefaultMaxPixels = 100_000_000

var (
	areaColor   = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	activeColor = color.RGBA{R: 217, G: 70, B: 239, A: 255}
	draftColor  = color.RGBA{R: 244, G: 63, B: 94, A: 255}
	badgeColor  = color.RGBA{R: 24, G: 24, B: 27, A: 220}
)

// Layer is everything drawn on top of the background.
type Layer struct {
	Doc     *models.Document
	Draft   *models.Draft
	Handles []geometry.Point

	// MaxPixels bounds width*height of both the natural and the zoomed canvas.
	MaxPixels int
}

// Render draws the layer over background scaled by the document zoom.
// A nil background (URL images are never fetched) yields a transparent canvas
// of the natural image size.
func Render(l Layer, background image.Image) (image.Image, error) {
	if l.Doc == nil {
		return nil, fmt.Errorf("overlay: document is nil")
	}

	limit := l.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}

	base, err := canvas(l.Doc, background, limit)
	if err != nil {
		return nil, err
	}

	zoom := l.Doc.Zoom
	if zoom <= 0 {
		zoom = models.DefaultZoom
	}
	zw := float64(base.Bounds().Dx()) * zoom
	zh := float64(base.Bounds().Dy()) * zoom
	if exceeds(zw, zh, limit) {
		return nil, fmt.Errorf("zoomed %.0fx%.0f: %w", zw, zh, ErrCanvasTooLarge)
	}
	w := max(1, geometry.Round(zw))
	h := max(1, geometry.Round(zh))
	if w != base.Bounds().Dx() || h != base.Bounds().Dy() {
		base = imaging.Resize(base, w, h, imaging.Linear)
	}

	dc := gg.NewContextForImage(base)
	dc.Scale(zoom, zoom)
	dc.SetFontFace(basicfont.Face7x13)

	for i, area := range l.Doc.Areas {
		c := areaColor
		if area.ID == l.Doc.ActiveID {
			c = activeColor
		}
		drawArea(dc, area, c, zoom)
		drawBadge(dc, area.Shape.Center(), i+1, zoom)
	}

	for _, p := range l.Handles {
		dc.DrawCircle(float64(p.X), float64(p.Y), 8/zoom)
		dc.SetColor(color.White)
		dc.FillPreserve()
		dc.SetColor(activeColor)
		dc.SetLineWidth(2 / zoom)
		dc.Stroke()
	}

	if l.Draft != nil {
		drawDraft(dc, *l.Draft, zoom)
	}

	return dc.Image(), nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

func canvas(doc *models.Document, background image.Image, limit int) (image.Image, error) {
	if background != nil {
		b := background.Bounds()
		if exceeds(float64(b.Dx()), float64(b.Dy()), limit) {
			return nil, fmt.Errorf("background %dx%d: %w", b.Dx(), b.Dy(), ErrCanvasTooLarge)
		}
		return background, nil
	}
	if doc.Image == nil || doc.Image.Width <= 0 || doc.Image.Height <= 0 {
		return nil, ErrNoCanvas
	}
	if exceeds(float64(doc.Image.Width), float64(doc.Image.Height), limit) {
		return nil, fmt.Errorf("image %dx%d: %w", doc.Image.Width, doc.Image.Height, ErrCanvasTooLarge)
	}
	return image.NewNRGBA(image.Rect(0, 0, doc.Image.Width, doc.Image.Height)), nil
}

// exceeds compares in float64 so client-reported sizes cannot overflow int.
func exceeds(w, h float64, limit int) bool {
	return w*h > float64(limit)
}

func drawArea(dc *gg.Context, area models.MapArea, c color.RGBA, zoom float64) {
	if !tracePath(dc, area.Kind(), area.Coords()) {
		return
	}
	dc.SetRGBA255(int(c.R), int(c.G), int(c.B), 51)
	dc.FillPreserve()
	dc.SetColor(c)
	dc.SetLineWidth(2 / zoom)
	dc.Stroke()
}

func drawBadge(dc *gg.Context, center geometry.PointF, n int, zoom float64) {
	dc.DrawCircle(center.X, center.Y, 12/zoom)
	dc.SetColor(badgeColor)
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawStringAnchored(fmt.Sprintf("#%d", n), center.X, center.Y, 0.5, 0.35)
}

func drawDraft(dc *gg.Context, d models.Draft, zoom float64) {
	dc.SetColor(draftColor)
	dc.SetLineWidth(2 / zoom)
	dc.SetDash(6/zoom, 4/zoom)
	defer dc.SetDash()

	if d.Kind == models.ShapePoly {
		// open polyline with vertex dots until the polygon is finished
		for i := 0; i+1 < len(d.Coords); i += 2 {
			x, y := float64(d.Coords[i]), float64(d.Coords[i+1])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
		for i := 0; i+1 < len(d.Coords); i += 2 {
			dc.DrawCircle(float64(d.Coords[i]), float64(d.Coords[i+1]), 3/zoom)
			dc.Fill()
		}
		return
	}

	if tracePath(dc, d.Kind, d.Coords) {
		dc.Stroke()
	}
}

// tracePath adds the shape outline to the current path.
func tracePath(dc *gg.Context, kind models.ShapeKind, c []int) bool {
	switch kind {
	case models.ShapeRect:
		if len(c) != 4 {
			return false
		}
		dc.DrawRectangle(float64(c[0]), float64(c[1]), float64(c[2]-c[0]), float64(c[3]-c[1]))
	case models.ShapeCircle:
		if len(c) != 3 {
			return false
		}
		dc.DrawCircle(float64(c[0]), float64(c[1]), float64(c[2]))
	case models.ShapePoly:
		if len(c) < 6 {
			return false
		}
		dc.MoveTo(float64(c[0]), float64(c[1]))
		for i := 2; i+1 < len(c); i += 2 {
			dc.LineTo(float64(c[i]), float64(c[i+1]))
		}
		dc.ClosePath()
	default:
		return false
	}
	return true
}
