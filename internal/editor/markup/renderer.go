package markup

import (
	"fmt"
	"strings"

	"imagemap-studio/internal/editor/models"
	"imagemap-studio/internal/editor/parser"
)

// ============================================================
// Renderer
// ============================================================

const (
	PlaceholderSrc = "IMAGE_PATH.jpg"
	imageAlt       = "Image description"
	fileExtension  = ".html"
)

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render собирает HTML image map из документа. Значения атрибутов выводятся
// как есть, без экранирования: санитизация на стороне встраивающего приложения.
func (r *Renderer) Render(doc *models.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	var builder strings.Builder
	builder.WriteString("<!-- Image Map Start -->\n")
	builder.WriteString(fmt.Sprintf(`<img src="%s" usemap="#%s" alt="%s">`, imageSrc(doc.Image), doc.MapName, imageAlt))
	builder.WriteString("\n\n")
	builder.WriteString(fmt.Sprintf(`<map name="%s">`, doc.MapName))
	builder.WriteString("\n")

	for _, area := range doc.Areas {
		builder.WriteString("  ")
		builder.WriteString(r.renderArea(area))
		builder.WriteString("\n")
	}

	builder.WriteString("</map>\n")
	builder.WriteString("<!-- Image Map End -->")
	return builder.String(), nil
}

// DownloadName: имя файла для скачивания: <mapName>.html.
func DownloadName(mapName string) string {
	return mapName + fileExtension
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderArea(area models.MapArea) string {
	return fmt.Sprintf(`<area shape="%s" coords="%s" href="%s" alt="%s" title="%s" target="%s">`,
		area.Kind(), parser.FormatCoords(area.Coords()), area.Href, area.Alt, area.Title, area.Target)
}

func imageSrc(img *models.ImageRef) string {
	if img == nil {
		return PlaceholderSrc
	}
	switch img.Source {
	case models.SourceURL:
		if img.URL != "" {
			return img.URL
		}
	case models.SourceUpload:
		if img.FileName != "" {
			return img.FileName
		}
	}
	return PlaceholderSrc
}
