// Package assets loads the embedded sprite images into a texture atlas.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
)

//go:embed img/*.png
var embedded embed.FS

// Names of the embedded sprites.
const (
	PlayerTexture = "img/player"
	TileTexture   = "img/bg"
)

// ErrTextureNotFound is returned when an ID was never handed out by the atlas.
var ErrTextureNotFound = errors.New("assets: texture not found")

// TextureID is a handle to an image owned by an Atlas. Zero is never valid.
type TextureID uint32

// Atlas owns every texture loaded by a demo. Textures are addressed by the
// name they were loaded under (without extension) and by a stable TextureID.
type Atlas struct {
	sources []fs.FS

	ids    map[string]TextureID
	images *intmap.Map[TextureID, *ebiten.Image]
	names  *intmap.Map[TextureID, string]
	next   TextureID

	newImage func(image.Image) *ebiten.Image
	release  func(*ebiten.Image)
}

// Option configures an Atlas.
type Option func(*Atlas)

// WithContentDir makes the atlas prefer files under dir over the embedded ones.
// An empty dir is ignored.
func WithContentDir(dir string) Option {
	return func(a *Atlas) {
		if dir == "" {
			return
		}
		a.sources = append([]fs.FS{os.DirFS(dir)}, a.sources...)
	}
}

// WithFS adds an extra lookup source ahead of the embedded images.
func WithFS(fsys fs.FS) Option {
	return func(a *Atlas) {
		a.sources = append([]fs.FS{fsys}, a.sources...)
	}
}

// WithImageFuncs replaces how decoded images become GPU images and how they
// are released. Headless tools use it to avoid touching the graphics driver.
func WithImageFuncs(create func(image.Image) *ebiten.Image, release func(*ebiten.Image)) Option {
	return func(a *Atlas) {
		a.newImage = create
		a.release = release
	}
}

// Headless swaps in placeholder images so worlds can run without a graphics
// device. Placeholders must never be drawn.
func Headless() Option {
	return WithImageFuncs(
		func(image.Image) *ebiten.Image { return &ebiten.Image{} },
		func(*ebiten.Image) {},
	)
}

// NewAtlas returns an empty atlas reading the embedded images.
func NewAtlas(opts ...Option) *Atlas {
	a := &Atlas{
		sources:  []fs.FS{embedded},
		ids:      make(map[string]TextureID),
		images:   intmap.New[TextureID, *ebiten.Image](8),
		names:    intmap.New[TextureID, string](8),
		newImage: ebiten.NewImageFromImage,
		release:  (*ebiten.Image).Deallocate,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load decodes the named image and returns its ID. Loading a name twice
// returns the ID of the first load.
func (a *Atlas) Load(name string) (TextureID, error) {
	name = cleanName(name)
	if id, ok := a.ids[name]; ok {
		return id, nil
	}

	data, err := a.read(name + ".png")
	if err != nil {
		return 0, fmt.Errorf("assets: load %s: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("assets: load %s: %w", name, err)
	}

	a.next++
	id := a.next
	a.ids[name] = id
	a.images.Put(id, a.newImage(img))
	a.names.Put(id, name)
	return id, nil
}

// MustLoad is Load for start-up code where a missing asset is fatal.
func (a *Atlas) MustLoad(name string) TextureID {
	id, err := a.Load(name)
	if err != nil {
		panic(err)
	}
	return id
}

func (a *Atlas) read(file string) ([]byte, error) {
	var errs []error
	for _, src := range a.sources {
		data, err := fs.ReadFile(src, file)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// Image returns the texture for id, or false if it was never loaded or has
// been unloaded.
func (a *Atlas) Image(id TextureID) (*ebiten.Image, bool) {
	return a.images.Get(id)
}

// MustImage panics with ErrTextureNotFound for unknown IDs.
func (a *Atlas) MustImage(id TextureID) *ebiten.Image {
	img, ok := a.images.Get(id)
	if !ok {
		panic(fmt.Errorf("%w: id %d", ErrTextureNotFound, id))
	}
	return img
}

// Lookup returns the ID a name was loaded under.
func (a *Atlas) Lookup(name string) (TextureID, bool) {
	id, ok := a.ids[cleanName(name)]
	return id, ok
}

// Name is the cleaned name id was loaded under, or "" for unknown IDs.
func (a *Atlas) Name(id TextureID) string {
	name, _ := a.names.Get(id)
	return name
}

// Len is the number of loaded textures.
func (a *Atlas) Len() int {
	return a.images.Len()
}

// Unload releases every texture. IDs handed out earlier become invalid.
func (a *Atlas) Unload() {
	for _, img := range a.images.All() {
		a.release(img)
	}
	a.images.Clear()
	a.names.Clear()
	clear(a.ids)
}

func cleanName(name string) string {
	name = path.Clean(strings.ReplaceAll(name, "\\", "/"))
	name = strings.TrimPrefix(name, "/")
	return strings.TrimSuffix(name, path.Ext(name))
}
