package processor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // BMP input
	_ "golang.org/x/image/tiff" // TIFF input

	"webpconv/pkg/imgutil"
)

// Load sniffs, decodes and normalizes the image at path, applying the EXIF
// orientation first when autoOrient is set. The result is always opaque.
func Load(path string, autoOrient bool) (*image.NRGBA, error) {
	kind, err := imgutil.SniffFile(path)
	if err != nil {
		return nil, err
	}
	if !kind.Convertible() {
		return nil, fmt.Errorf("unsupported image type (%s)", kind)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}

	if autoOrient {
		orientation, err := readOrientation(path, kind)
		if err != nil {
			return nil, err
		}
		img = applyOrientation(img, orientation)
	}

	return Normalize(img), nil
}

// Normalize returns an opaque copy of img. Alpha is dropped, not blended:
// each pixel keeps its straight (un-premultiplied) RGB value.
func Normalize(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// AddFrame grows the canvas by border pixels on every side and fills the new
// region with c. A border of zero returns img unchanged.
func AddFrame(img *image.NRGBA, border int, c color.Color) *image.NRGBA {
	if border <= 0 {
		return img
	}
	b := img.Bounds()
	dst := imaging.New(b.Dx()+2*border, b.Dy()+2*border, c)
	return imaging.Paste(dst, img, image.Pt(border, border))
}

// Compose loads path and applies the frame described by f.
func Compose(path string, f Frame, autoOrient bool) (*image.NRGBA, error) {
	img, err := Load(path, autoOrient)
	if err != nil {
		return nil, err
	}
	return ApplyFrame(img, f)
}

// ApplyFrame applies f to an already normalized image.
func ApplyFrame(img *image.NRGBA, f Frame) (*image.NRGBA, error) {
	border := f.Border()
	if border == 0 {
		return img, nil
	}
	c, err := ParseColor(f.Color)
	if err != nil {
		return nil, err
	}
	return AddFrame(img, border, c), nil
}
