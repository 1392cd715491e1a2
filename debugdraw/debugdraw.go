// Package debugdraw rasterizes a read-only snapshot of a physics2d.World:
// quadtree nodes, body bounds, collider shapes and active contacts.
package debugdraw

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gekko3d/physics2d"
	"github.com/gekko3d/physics2d/geom"
)

var (
	Background = color.RGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}
	QuadColor  = color.RGBA{R: 0x3a, G: 0x4a, B: 0x6a, A: 0xff}
	AABBColor  = color.RGBA{R: 0x90, G: 0x90, B: 0x30, A: 0xff}
	// InContact and Idle tint bodies depending on the attached ContactCounter.
	InContact    = color.RGBA{R: 0x20, G: 0xd0, B: 0x40, A: 0xff}
	Idle         = color.RGBA{R: 0xd0, G: 0x30, B: 0xd0, A: 0xff}
	StaticColor  = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	SensorColor  = color.RGBA{R: 0x30, G: 0x90, B: 0xd0, A: 0xff}
	ContactColor = color.RGBA{R: 0xf0, G: 0x20, B: 0x20, A: 0xff}
	LabelColor   = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
)

type Options struct {
	Width  int
	Height int
	// Region is the world area mapped onto the image. When nil the quadtree
	// root is used, falling back to the union of body bounds.
	Region *geom.AABB
	// Counter colours bodies that are touching something. Optional.
	Counter *physics2d.ContactCounter

	QuadTree bool
	AABBs    bool
	Contacts bool
	Labels   bool
}

func DefaultOptions() Options {
	return Options{
		Width:    800,
		Height:   600,
		QuadTree: true,
		AABBs:    true,
		Contacts: true,
		Labels:   true,
	}
}

type canvas struct {
	img  *image.RGBA
	ras  *vector.Rasterizer
	view geom.Mat33
	unit float32 // pixels per world unit
}

// Render draws the world as last stepped. It does not mutate the world.
func Render(w *physics2d.World, opts Options) *image.RGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	region := viewRegion(w, opts)
	c := &canvas{
		img:  img,
		ras:  vector.NewRasterizer(opts.Width, opts.Height),
		view: viewTransform(region, opts.Width, opts.Height),
	}
	c.unit = float32(opts.Width) / math32.Max(region.Width(), 1e-6)

	if opts.QuadTree {
		w.QuadTree().Walk(func(node *physics2d.QuadTree) bool {
			c.strokeBox(node.Bounds(), QuadColor)
			return true
		})
	}

	w.EachBody(func(h physics2d.BodyHandle, b *physics2d.Body) bool {
		col := bodyColor(h, b, opts.Counter)
		for slot, cl := range b.Colliders() {
			fill := col
			if cl.IsSensor {
				fill = SensorColor
			}
			c.fillShape(b.Oriented(uint8(slot)), b.Position, fill)
		}
		if opts.AABBs && b.HasBounds() {
			c.strokeBox(b.AABB(), AABBColor)
		}
		return true
	})

	if opts.Contacts {
		for _, ct := range w.Contacts() {
			p := ct.MTV.ContactPoint()
			c.line(p, p.Add(ct.MTV.Overlap()), 1, ContactColor)
			c.fillCircle(c.toPixel(p), 2.5, ContactColor)
		}
	}

	if opts.Labels {
		w.EachBody(func(h physics2d.BodyHandle, b *physics2d.Body) bool {
			text := fmt.Sprintf("%d", h.Index())
			if opts.Counter != nil && opts.Counter.Count(h) > 0 {
				text = fmt.Sprintf("%d:%d", h.Index(), opts.Counter.Count(h))
			}
			c.label(b.AABB().TopRight, text)
			return true
		})
	}
	return img
}

// WritePNG encodes img as PNG.
func WritePNG(out io.Writer, img image.Image) error {
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

func viewRegion(w *physics2d.World, opts Options) geom.AABB {
	if opts.Region != nil {
		return *opts.Region
	}
	root := w.QuadTree().Bounds()
	if !root.IsZero() {
		return root
	}
	var region geom.AABB
	first := true
	w.EachBody(func(_ physics2d.BodyHandle, b *physics2d.Body) bool {
		if !b.HasBounds() {
			return true
		}
		if first {
			region, first = b.AABB(), false
		} else {
			region = region.Union(b.AABB())
		}
		return true
	})
	if first {
		return geom.NewAABB(geom.Vec2{}, geom.V(1, 1))
	}
	return region
}

// viewTransform maps the region onto the image with y pointing up.
func viewTransform(region geom.AABB, width, height int) geom.Mat33 {
	sx := float32(width) / math32.Max(region.Width(), 1e-6)
	sy := float32(height) / math32.Max(region.Height(), 1e-6)
	return mgl32.Translate2D(0, float32(height)).
		Mul3(mgl32.Scale2D(sx, -sy)).
		Mul3(mgl32.Translate2D(-region.Left(), -region.Bottom()))
}

func (c *canvas) toPixel(p geom.Vec2) geom.Vec2 {
	return geom.TransformPoint(c.view, p)
}

func (c *canvas) fill(col color.Color) {
	c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	c.ras.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
}

func (c *canvas) polygon(pts []geom.Vec2, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.ras.MoveTo(pts[0].X(), pts[0].Y())
	for _, p := range pts[1:] {
		c.ras.LineTo(p.X(), p.Y())
	}
	c.ras.ClosePath()
	c.fill(col)
}

// fillCircle draws a pixel-space circle from four cubic arcs.
func (c *canvas) fillCircle(center geom.Vec2, r float32, col color.Color) {
	const k = 0.5522847
	x, y := center.X(), center.Y()
	c.ras.MoveTo(x+r, y)
	c.ras.CubeTo(x+r, y+k*r, x+k*r, y+r, x, y+r)
	c.ras.CubeTo(x-k*r, y+r, x-r, y+k*r, x-r, y)
	c.ras.CubeTo(x-r, y-k*r, x-k*r, y-r, x, y-r)
	c.ras.CubeTo(x+k*r, y-r, x+r, y-k*r, x+r, y)
	c.ras.ClosePath()
	c.fill(col)
}

func (c *canvas) fillShape(o geom.Oriented, position geom.Vec2, col color.Color) {
	switch o.Shape.Kind {
	case geom.ShapeCircle:
		c.fillCircle(c.toPixel(position), o.Shape.Radius*c.unit, col)
	case geom.ShapeBox:
		corners := o.WorldCorners(position)
		// Stored order is (+,+), (-,+), (+,-), (-,-); walk it around the box.
		ring := []geom.Vec2{corners[0], corners[1], corners[3], corners[2]}
		for i := range ring {
			ring[i] = c.toPixel(ring[i])
		}
		c.polygon(ring, col)
	}
}

// line draws a world-space segment with a pixel width.
func (c *canvas) line(a, b geom.Vec2, width float32, col color.Color) {
	pa, pb := c.toPixel(a), c.toPixel(b)
	dir := geom.Normalized(pb.Sub(pa))
	if dir.Len() == 0 {
		return
	}
	n := geom.Perp(dir).Mul(width / 2)
	c.polygon([]geom.Vec2{pa.Add(n), pb.Add(n), pb.Sub(n), pa.Sub(n)}, col)
}

func (c *canvas) strokeBox(box geom.AABB, col color.Color) {
	tl := geom.V(box.Left(), box.Top())
	br := geom.V(box.Right(), box.Bottom())
	c.line(tl, box.TopRight, 1, col)
	c.line(box.TopRight, br, 1, col)
	c.line(br, box.BottomLeft, 1, col)
	c.line(box.BottomLeft, tl, 1, col)
}

func (c *canvas) label(at geom.Vec2, text string) {
	p := c.toPixel(at)
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(LabelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(p.X())+2, int(p.Y())-2),
	}
	d.DrawString(text)
}

func bodyColor(h physics2d.BodyHandle, b *physics2d.Body, counter *physics2d.ContactCounter) color.RGBA {
	if counter != nil {
		if counter.InContact(h) {
			return InContact
		}
		return Idle
	}
	if b.IsStatic() {
		return StaticColor
	}
	return Idle
}
