package scene

import (
	"errors"
	"image/color"
	"testing"

	"github.com/tdewolff/test"
)

func testFrame(names ...string) *Frame {
	f := NewFrame(900, 675, color.NRGBA{A: 0xff}, nil)
	for _, n := range names {
		f.Add(NewGroup(n, &Text{Content: n, Size: 10, Shadow: &Shadow{Blur: 4}}))
	}
	return f
}

func TestFrameAddSkipsEmptyGroups(t *testing.T) {
	f := testFrame("a")
	f.Add(NewGroup("empty"))
	f.Add(nil)
	test.T(t, len(f.Groups), 1)
	_, ok := f.Group("empty")
	test.That(t, !ok)
	test.T(t, len(f.Texts()), 1)
}

func TestFrameClone(t *testing.T) {
	f := testFrame("a", "b")
	c := f.Clone()
	c.Groups[0].Texts[0].Content = "changed"
	c.Groups[0].Texts[0].Shadow.Blur = 99
	c.Groups[1].Transform.X = 42

	test.String(t, f.Groups[0].Texts[0].Content, "a")
	test.Float(t, f.Groups[0].Texts[0].Shadow.Blur, 4)
	test.Float(t, f.Groups[1].Transform.X, 0)
}

func TestTransformApply(t *testing.T) {
	tr := Transform{X: 75, Y: 50, ScaleX: 0.5, ScaleY: 1}
	x, y := tr.Apply(100, 10)
	test.Float(t, x, 125)
	test.Float(t, y, 60)

	x, y = Identity().Apply(3, 4)
	test.Float(t, x, 3)
	test.Float(t, y, 4)
}

func TestSurfaceUnmounted(t *testing.T) {
	s := NewSurface()
	test.That(t, !s.Mounted())
	_, err := s.Snapshot()
	test.That(t, errors.Is(err, ErrNotMounted))
	_, err = s.Update(testFrame("a"), "k", nil)
	test.That(t, errors.Is(err, ErrNotMounted))

	s.Mount()
	_, err = s.Snapshot()
	test.That(t, errors.Is(err, ErrNotMounted), "nothing drawn yet")
}

func TestSurfaceTransformPass(t *testing.T) {
	s := NewSurface()
	s.Mount()
	tr := map[string]Transform{"a": {X: 10, Y: 20, ScaleX: 0.62, ScaleY: 1}}

	ran, err := s.Update(testFrame("a"), "k1", tr)
	test.Error(t, err)
	test.That(t, ran)
	test.T(t, s.Passes(), 1)

	f, err := s.Snapshot()
	test.Error(t, err)
	g, _ := f.Group("a")
	test.T(t, g.Transform, tr["a"])

	// same key, same groups: reconciled groups keep their transform
	ran, err = s.Update(testFrame("a"), "k1", tr)
	test.Error(t, err)
	test.That(t, !ran)
	test.T(t, s.Passes(), 1)
	f, _ = s.Snapshot()
	g, _ = f.Group("a")
	test.T(t, g.Transform, tr["a"])

	// a newly mounted group forces the pass
	tr["b"] = Transform{ScaleX: 0.76, ScaleY: 1}
	ran, _ = s.Update(testFrame("a", "b"), "k1", tr)
	test.That(t, ran)
	test.T(t, s.Passes(), 2)

	// changed key reruns with the new values, not on top of the old ones
	tr2 := map[string]Transform{"a": {X: 5, ScaleX: 0.5, ScaleY: 1}, "b": {ScaleX: 0.8, ScaleY: 1}}
	ran, _ = s.Update(testFrame("a", "b"), "k2", tr2)
	test.That(t, ran)
	f, _ = s.Snapshot()
	g, _ = f.Group("a")
	test.T(t, g.Transform, tr2["a"])
}

func TestSurfaceRepeatedUpdatesDoNotAccumulate(t *testing.T) {
	s := NewSurface()
	s.Mount()
	tr := map[string]Transform{"a": {X: 10, ScaleX: 0.62, ScaleY: 1}}
	for i := 0; i < 5; i++ {
		_, err := s.Update(testFrame("a"), "k", tr)
		test.Error(t, err)
	}
	f, _ := s.Snapshot()
	test.T(t, len(f.Groups), 1)
	test.T(t, len(f.Texts()), 1)
	g, _ := f.Group("a")
	test.Float(t, g.Transform.ScaleX, 0.62)
}

func TestSurfaceSnapshotIsCopy(t *testing.T) {
	s := NewSurface()
	s.Mount()
	test.Error(t, s.Replace(testFrame("a")))
	test.That(t, s.ApplyTransforms("k", map[string]Transform{"a": {ScaleX: 2, ScaleY: 1}}))

	f, _ := s.Snapshot()
	f.Groups[0].Transform.ScaleX = 7
	f.Groups[0].Texts[0].Content = "x"

	f2, _ := s.Snapshot()
	test.Float(t, f2.Groups[0].Transform.ScaleX, 2)
	test.String(t, f2.Groups[0].Texts[0].Content, "a")
}
