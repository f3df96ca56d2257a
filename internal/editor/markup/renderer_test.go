package markup

import (
	"strings"
	"testing"

	"imagemap-studio/internal/editor/geometry"
	"imagemap-studio/internal/editor/models"
	"imagemap-studio/internal/editor/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_RoundTripScenario(t *testing.T) {
	s := session.New()
	require.True(t, s.LoadImage(models.ImageRef{Source: models.SourceUpload, FileName: "shop.jpg", Width: 400, Height: 300}))

	s.PointerDown(session.PointerEvent{Point: geometry.Point{X: 10, Y: 10}, Target: session.Target{Kind: session.TargetCanvas}})
	s.PointerMove(session.PointerEvent{Point: geometry.Point{X: 110, Y: 60}})
	s.PointerUp(session.PointerEvent{Point: geometry.Point{X: 110, Y: 60}})
	require.NoError(t, s.SetLinkTarget("https://example.com"))
	s.SetMapName("demo")

	out, err := NewRenderer().Render(s.Document())
	require.NoError(t, err)

	assert.Contains(t, out, `<map name="demo">`)
	assert.Contains(t, out, `<img src="shop.jpg" usemap="#demo" alt="Image description">`)
	assert.Contains(t, out, `shape="rect" coords="10,10,110,60" href="https://example.com"`)
}

func TestRender_ExactOutput(t *testing.T) {
	doc := models.NewDocument()
	doc.MapName = "nav"
	doc.Image = &models.ImageRef{Source: models.SourceURL, URL: "https://cdn.example/p.png"}
	doc.Append(models.NewArea("a", models.Rect{X1: 1, Y1: 2, X2: 30, Y2: 40}, 1))
	circle := models.NewArea("b", models.Circle{CX: 50, CY: 50, R: 10}, 2)
	circle.Href = "/about"
	circle.Target = models.TargetSelf
	doc.Append(circle)

	out, err := NewRenderer().Render(doc)
	require.NoError(t, err)

	want := "<!-- Image Map Start -->\n" +
		`<img src="https://cdn.example/p.png" usemap="#nav" alt="Image description">` + "\n\n" +
		`<map name="nav">` + "\n" +
		`  <area shape="rect" coords="1,2,30,40" href="https://" alt="Area 1" title="Area 1" target="_blank">` + "\n" +
		`  <area shape="circle" coords="50,50,10" href="/about" alt="Area 2" title="Area 2" target="_self">` + "\n" +
		"</map>\n" +
		"<!-- Image Map End -->"
	assert.Equal(t, want, out)
}

func TestRender_OrderFollowsCollection(t *testing.T) {
	doc := models.NewDocument()
	doc.Append(models.NewArea("a", models.Rect{X2: 10, Y2: 10}, 1))
	doc.Append(models.NewArea("b", models.Rect{X2: 20, Y2: 20}, 2))
	require.True(t, doc.Move(1, 0))

	out, err := NewRenderer().Render(doc)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, `coords="0,0,20,20"`), strings.Index(out, `coords="0,0,10,10"`))
}

func TestRender_Idempotent(t *testing.T) {
	doc := models.NewDocument()
	doc.Append(models.NewArea("a", models.Polygon{Points: []geometry.Point{{X: 1, Y: 1}, {X: 9, Y: 1}, {X: 5, Y: 8}}}, 1))

	r := NewRenderer()
	first, err := r.Render(doc)
	require.NoError(t, err)
	second, err := r.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, first, `shape="poly" coords="1,1,9,1,5,8"`)
}

func TestRender_NoEscaping(t *testing.T) {
	doc := models.NewDocument()
	a := models.NewArea("a", models.Rect{X2: 10, Y2: 10}, 1)
	a.Alt = `say "hi" <b>`
	doc.Append(a)

	out, err := NewRenderer().Render(doc)
	require.NoError(t, err)
	assert.Contains(t, out, `alt="say "hi" <b>"`)
}

func TestRender_PlaceholderWithoutImage(t *testing.T) {
	out, err := NewRenderer().Render(models.NewDocument())
	require.NoError(t, err)
	assert.Contains(t, out, `src="IMAGE_PATH.jpg"`)
	assert.Contains(t, out, "<map name=\"workmap\">\n</map>")
}

func TestRender_NilDocument(t *testing.T) {
	_, err := NewRenderer().Render(nil)
	assert.Error(t, err)
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "demo.html", DownloadName("demo"))
}
