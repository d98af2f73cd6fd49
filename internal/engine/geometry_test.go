package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformThen(t *testing.T) {
	m := Translate(10, 0).Then(Rotate180About(5, 5))
	p := m.Apply(Point2D{X: 1, Y: 2})

	// rotate first: (9, 8), then translate
	assert.Equal(t, Point2D{X: 19, Y: 8}, p)
}

func TestRotateTwiceIsIdentity(t *testing.T) {
	r := Rotate180About(3.5, 17.25)
	assert.Equal(t, Identity(), r.Then(r))
}

func TestMirrorXAbout(t *testing.T) {
	m := MirrorXAbout(10, 4)
	assert.Equal(t, Point2D{X: 18, Y: 7}, m.Apply(Point2D{X: 2, Y: 7}))
	assert.Equal(t, Identity(), m.Then(m))
}

func TestTransformString(t *testing.T) {
	assert.Equal(t, "matrix(1 0 0 1 30 0)", Translate(30, 0).String())
	assert.Equal(t, "matrix(-1 0 0 -1 20 12.5)", Rotate180About(10, 6.25).String())
}

func TestOutlinePoints(t *testing.T) {
	o := Outline{{X: 0, Y: 0}, {X: 0, Y: 2.5}, {X: 35, Y: 2.5}}
	assert.Equal(t, "0,0 0,2.5 35,2.5", o.Points())
}

func TestOutlineBoundingBox(t *testing.T) {
	o := Outline{{X: 3, Y: -1}, {X: -2, Y: 4}, {X: 1, Y: 1}}
	min, max := o.BoundingBox()
	assert.Equal(t, Point2D{X: -2, Y: -1}, min)
	assert.Equal(t, Point2D{X: 3, Y: 4}, max)

	min, max = Outline{}.BoundingBox()
	assert.Equal(t, Point2D{}, min)
	assert.Equal(t, Point2D{}, max)
}

func TestPolygonTransformedLeavesOriginal(t *testing.T) {
	p := Polygon{Outline: Outline{{X: 1, Y: 1}}, Color: "#000000"}
	moved := p.Transformed(Translate(2, 3))

	assert.Equal(t, Point2D{X: 3, Y: 4}, moved.Outline[0])
	assert.Equal(t, Point2D{X: 1, Y: 1}, p.Outline[0])
	assert.Equal(t, "#000000", moved.Color)
}
