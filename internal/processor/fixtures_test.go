package processor

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		err = bmp.Encode(&buf, img)
	case ".tif", ".tiff":
		err = tiff.Encode(&buf, img, nil)
	default:
		t.Fatalf("no fixture encoder for %s", name)
	}
	if err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func decodeWebP(t *testing.T, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		t.Fatalf("decode webp %s: %v", path, err)
	}
	return img
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// writeJPEGWithOrientation encodes img as JPEG and splices an APP1 EXIF
// segment carrying a single IFD0 Orientation entry right after SOI.
func writeJPEGWithOrientation(t *testing.T, dir, name string, img image.Image, orientation uint16) string {
	t.Helper()

	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	data := enc.Bytes()

	var tiffBuf bytes.Buffer
	tiffBuf.Write([]byte{0x49, 0x49, 0x2a, 0x00})
	_ = binary.Write(&tiffBuf, binary.LittleEndian, uint32(8))
	_ = binary.Write(&tiffBuf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&tiffBuf, binary.LittleEndian, uint16(0x0112))
	_ = binary.Write(&tiffBuf, binary.LittleEndian, uint16(3))
	_ = binary.Write(&tiffBuf, binary.LittleEndian, uint32(1))
	_ = binary.Write(&tiffBuf, binary.LittleEndian, orientation)
	_ = binary.Write(&tiffBuf, binary.LittleEndian, uint16(0))
	_ = binary.Write(&tiffBuf, binary.LittleEndian, uint32(0))

	exifPayload := append([]byte("Exif\x00\x00"), tiffBuf.Bytes()...)

	var out bytes.Buffer
	out.Write(data[:2])
	out.Write([]byte{0xff, 0xe1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(exifPayload)+2))
	out.Write(exifPayload)
	out.Write(data[2:])

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
