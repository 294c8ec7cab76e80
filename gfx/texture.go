package gfx

import (
	"fmt"
	"image"
	"os"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// TextureOptions configures sampling. The zero value is nearest filtering for
// both minification and magnification.
type TextureOptions struct {
	MinFilter TextureFilter
	MagFilter TextureFilter
}

// Texture owns one immutable 2D RGBA8 image on the GPU.
type Texture struct {
	ctx    *Context
	id     uint32
	width  int
	height int
}

// LoadTexture decodes the image at path and uploads it.
func LoadTexture(ctx *Context, path string, opts TextureOptions) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Resource: ResourceTexture, Path: path, Reason: "cannot open image", Err: err}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, &LoadError{Resource: ResourceTexture, Path: path, Reason: "cannot decode image", Err: err}
	}

	tex, err := NewTexture(ctx, img, opts)
	if err != nil {
		return nil, &LoadError{Resource: ResourceTexture, Path: path, Err: err}
	}
	ctx.Logger().Debugf("loaded %s texture %q (%dx%d)", format, path, tex.width, tex.height)
	return tex, nil
}

// NewTexture uploads an already decoded image, generates mipmaps and applies opts.
func NewTexture(ctx *Context, img image.Image, opts TextureOptions) (*Texture, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	pix := FlipRGBA(img)
	w, h := bounds.Dx(), bounds.Dy()

	dev := ctx.Device()
	id := dev.GenTexture()
	ctx.bindTexture(0, id)
	dev.TexFilter(opts.MinFilter, opts.MagFilter)
	dev.TexImage2D(int32(w), int32(h), pix)
	dev.GenerateMipmap()

	return &Texture{ctx: ctx, id: id, width: w, height: h}, nil
}

// FlipRGBA converts img to non-premultiplied RGBA8 and returns its rows bottom
// row first, matching texture coordinates with a bottom-left origin.
func FlipRGBA(img image.Image) []byte {
	bounds := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	row := w * 4
	out := make([]byte, row*h)
	for y := 0; y < h; y++ {
		src := rgba.Pix[y*rgba.Stride : y*rgba.Stride+row]
		copy(out[(h-1-y)*row:], src)
	}
	return out
}

func (t *Texture) ID() uint32  { return t.id }
func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Bind makes t the texture on unit 0 for subsequent draws.
func (t *Texture) Bind() {
	t.ctx.bindTexture(0, t.id)
}

// Destroy deletes the texture. Calling it again is a no-op.
func (t *Texture) Destroy() {
	if t.id == 0 {
		return
	}
	t.ctx.Device().DeleteTexture(t.id)
	t.ctx.releasedTexture(t.id)
	t.id = 0
}
