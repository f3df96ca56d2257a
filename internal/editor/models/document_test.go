package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWith(ids ...string) *Document {
	d := NewDocument()
	for i, id := range ids {
		d.Append(NewArea(id, Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}, i+1))
	}
	return d
}

func ids(d *Document) []string {
	out := make([]string, 0, len(d.Areas))
	for _, a := range d.Areas {
		out = append(out, a.ID)
	}
	return out
}

func TestNewDocument_Defaults(t *testing.T) {
	d := NewDocument()
	assert.Equal(t, DefaultMapName, d.MapName)
	assert.Equal(t, ToolRect, d.Tool)
	assert.Equal(t, DefaultZoom, d.Zoom)
	assert.Empty(t, d.Areas)
	assert.Nil(t, d.Active())
}

func TestNewArea_Defaults(t *testing.T) {
	a := NewArea("x", Circle{CX: 1, CY: 1, R: 9}, 3)
	assert.Equal(t, DefaultHref, a.Href)
	assert.Equal(t, "Area 3", a.Alt)
	assert.Equal(t, "Area 3", a.Title)
	assert.Equal(t, TargetBlank, a.Target)
	assert.Equal(t, ShapeCircle, a.Kind())
}

func TestDocument_Move(t *testing.T) {
	d := docWith("a0", "a1", "a2", "a3")
	require.True(t, d.Move(2, 0))
	assert.Equal(t, []string{"a2", "a0", "a1", "a3"}, ids(d))

	d = docWith("a0", "a1", "a2", "a3")
	require.True(t, d.Move(0, 3))
	assert.Equal(t, []string{"a1", "a2", "a3", "a0"}, ids(d))
}

func TestDocument_MoveNoop(t *testing.T) {
	d := docWith("a0", "a1", "a2")
	assert.False(t, d.Move(1, 1))
	assert.False(t, d.Move(-1, 0))
	assert.False(t, d.Move(0, 3))
	assert.Equal(t, []string{"a0", "a1", "a2"}, ids(d))
}

func TestDocument_RemoveActiveClearsSelection(t *testing.T) {
	d := docWith("a", "b", "c")
	d.ActiveID = "b"

	require.True(t, d.Remove("b"))
	assert.Empty(t, d.ActiveID)
	assert.Equal(t, []string{"a", "c"}, ids(d))
}

func TestDocument_RemoveOtherKeepsSelection(t *testing.T) {
	d := docWith("a", "b", "c")
	d.ActiveID = "b"

	require.True(t, d.Remove("c"))
	assert.Equal(t, "b", d.ActiveID)
	assert.False(t, d.Remove("missing"))
}

func TestDocument_Clear(t *testing.T) {
	d := docWith("a", "b")
	d.ActiveID = "a"
	d.Clear()
	assert.Empty(t, d.Areas)
	assert.Empty(t, d.ActiveID)
}

func TestParseToolAndTarget(t *testing.T) {
	tool, ok := ParseTool("poly")
	assert.True(t, ok)
	kind, ok := tool.ShapeKind()
	assert.True(t, ok)
	assert.Equal(t, ShapePoly, kind)

	_, ok = ToolSelect.ShapeKind()
	assert.False(t, ok)
	_, ok = ParseTool("lasso")
	assert.False(t, ok)

	target, ok := ParseTarget("_top")
	assert.True(t, ok)
	assert.Equal(t, TargetTop, target)
	_, ok = ParseTarget("_new")
	assert.False(t, ok)
}

func TestMapArea_JSON(t *testing.T) {
	a := NewArea("id-1", Polygon{}, 1)
	a.Shape, _ = ShapeFromCoords(ShapePoly, []int{1, 2, 3, 4, 5, 6})
	a.Href = "https://example.com"

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"id-1","shape":"poly","coords":[1,2,3,4,5,6],"href":"https://example.com","alt":"Area 1","title":"Area 1","target":"_blank"}`, string(data))

	var back MapArea
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, a.Coords(), back.Coords())
	assert.Equal(t, a.Href, back.Href)
}

func TestMapArea_UnmarshalRejectsBadArity(t *testing.T) {
	var a MapArea
	err := json.Unmarshal([]byte(`{"id":"x","shape":"rect","coords":[1,2,3]}`), &a)
	assert.ErrorIs(t, err, ErrCoordArity)
}
