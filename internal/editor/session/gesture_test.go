package session

import (
	"testing"

	"imagemap-studio/internal/editor/geometry"

	"github.com/stretchr/testify/assert"
)

type recordingGesture struct {
	events []string
	points []geometry.Point
}

func (g *recordingGesture) Name() string { return "record" }

func (g *recordingGesture) OnStart(p geometry.Point) { g.record("start", p) }
func (g *recordingGesture) OnMove(p geometry.Point)  { g.record("move", p) }
func (g *recordingGesture) OnEnd(p geometry.Point)   { g.record("end", p) }

func (g *recordingGesture) record(ev string, p geometry.Point) {
	g.events = append(g.events, ev)
	g.points = append(g.points, p)
}

func TestGestures_Lifecycle(t *testing.T) {
	var g Gestures
	h := &recordingGesture{}

	assert.False(t, g.Move(pt(1, 1)))
	assert.True(t, g.Begin(h, pt(0, 0)))
	assert.True(t, g.Active())
	assert.Equal(t, "record", g.Name())

	assert.True(t, g.Move(pt(5, 5)))
	assert.True(t, g.End(pt(6, 6)))
	assert.False(t, g.Active())
	assert.False(t, g.End(pt(7, 7)))

	assert.Equal(t, []string{"start", "move", "end"}, h.events)
	assert.Equal(t, []geometry.Point{pt(0, 0), pt(5, 5), pt(6, 6)}, h.points)
}

func TestGestures_SecondBeginIgnored(t *testing.T) {
	var g Gestures
	first := &recordingGesture{}
	second := &recordingGesture{}

	assert.True(t, g.Begin(first, pt(0, 0)))
	assert.False(t, g.Begin(second, pt(1, 1)))
	g.Move(pt(2, 2))

	assert.Empty(t, second.events)
	assert.Len(t, first.events, 2)
}

func TestGestures_CancelSkipsOnEnd(t *testing.T) {
	var g Gestures
	h := &recordingGesture{}
	g.Begin(h, pt(0, 0))
	g.Cancel()

	assert.False(t, g.Active())
	assert.Empty(t, g.Name())
	assert.Equal(t, []string{"start"}, h.events)
}
