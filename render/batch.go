// Package render batches sprite draws so both ECS demos share one
// point-sampled, camera-transformed draw path.
package render

import (
	"cmp"
	"image"
	"image/color"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// Sprite is a single queued draw.
type Sprite struct {
	Image    *ebiten.Image
	Position mgl64.Vec2
	Layer    int

	seq int
}

// Command is a resolved draw: the image and the full world-to-screen
// transform applied to it.
type Command struct {
	Image *ebiten.Image
	GeoM  ebiten.GeoM
	Layer int
}

// Batch collects sprites between Begin and Flush, similar to a sprite batch
// with deferred sorting.
type Batch struct {
	view    ebiten.GeoM
	clip    image.Rectangle
	sprites []Sprite
	drawn   int
}

// NewBatch returns an empty batch with no clip.
func NewBatch() *Batch {
	return &Batch{}
}

// Begin discards any queued sprites and sets the view transform.
func (b *Batch) Begin(view ebiten.GeoM) {
	b.view = view
	b.sprites = b.sprites[:0]
}

// Add queues img with its top-left corner at pos.
func (b *Batch) Add(img *ebiten.Image, pos mgl64.Vec2, layer int) {
	b.sprites = append(b.sprites, Sprite{
		Image:    img,
		Position: pos,
		Layer:    layer,
		seq:      len(b.sprites),
	})
}

// SetClip limits Flush to r in destination coordinates. An empty r draws
// over the whole destination.
func (b *Batch) SetClip(r image.Rectangle) {
	b.clip = r
}

// Clip is the rectangle set by the last SetClip.
func (b *Batch) Clip() image.Rectangle {
	return b.clip
}

// Len is the number of queued sprites.
func (b *Batch) Len() int {
	return len(b.sprites)
}

// Commands resolves the queued sprites in draw order without drawing.
// Lower layers come first; ties keep insertion order.
func (b *Batch) Commands() []Command {
	sorted := slices.Clone(b.sprites)
	slices.SortStableFunc(sorted, func(x, y Sprite) int {
		return cmp.Or(cmp.Compare(x.Layer, y.Layer), cmp.Compare(x.seq, y.seq))
	})

	cmds := make([]Command, len(sorted))
	for i, s := range sorted {
		var g ebiten.GeoM
		g.Translate(s.Position.X(), s.Position.Y())
		g.Concat(b.view)
		cmds[i] = Command{Image: s.Image, GeoM: g, Layer: s.Layer}
	}
	return cmds
}

// Flush draws every queued sprite onto dst, cut down to the clip, with
// nearest filtering and empties the batch. Sub-images keep the parent's
// coordinates so the command transforms still apply.
func (b *Batch) Flush(dst *ebiten.Image) {
	target := dst
	if r := ClipBounds(dst.Bounds(), b.clip); r != dst.Bounds() {
		if sub, ok := dst.SubImage(r).(*ebiten.Image); ok {
			target = sub
		}
	}

	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	for _, c := range b.Commands() {
		op.GeoM = c.GeoM
		target.DrawImage(c.Image, op)
	}
	b.drawn = len(b.sprites)
	b.sprites = b.sprites[:0]
}

// Drawn is how many sprites the last Flush drew.
func (b *Batch) Drawn() int {
	return b.drawn
}

// ClipBounds is the part of dst that a batch clipped to clip draws into.
// An empty clip leaves dst whole.
func ClipBounds(dst, clip image.Rectangle) image.Rectangle {
	if clip.Empty() {
		return dst
	}
	return clip.Intersect(dst)
}

// ClearViewport paints the bars black and the viewport cornflower blue.
func ClearViewport(screen *ebiten.Image, viewport image.Rectangle) {
	screen.Fill(color.Black)
	if sub, ok := screen.SubImage(ClipBounds(screen.Bounds(), viewport)).(*ebiten.Image); ok {
		sub.Fill(colornames.Cornflowerblue)
	}
}
