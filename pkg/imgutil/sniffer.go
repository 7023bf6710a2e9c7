package imgutil

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies an image container type.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindBMP
	KindTIFF
	KindWebP
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindBMP:
		return "bmp"
	case KindTIFF:
		return "tiff"
	case KindWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// Convertible reports whether k is accepted as conversion input.
// WebP is recognized so it can be rejected with a clear message.
func (k Kind) Convertible() bool {
	switch k {
	case KindJPEG, KindPNG, KindBMP, KindTIFF:
		return true
	default:
		return false
	}
}

// HeaderSize is the number of leading bytes DetectHeader needs.
const HeaderSize = 12

var (
	pngSig    = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig   = []byte{0xff, 0xd8, 0xff}
	bmpSig    = []byte("BM")
	tiffSigLE = []byte{0x49, 0x49, 0x2a, 0x00}
	tiffSigBE = []byte{0x4d, 0x4d, 0x00, 0x2a}
	riffSig   = []byte("RIFF")
	webpSig   = []byte("WEBP")
)

// DetectHeader inspects the first HeaderSize bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < HeaderSize {
		return KindUnknown, errors.New("header too short")
	}

	switch {
	case bytes.HasPrefix(header, jpegSig):
		return KindJPEG, nil
	case bytes.HasPrefix(header, pngSig):
		return KindPNG, nil
	case bytes.HasPrefix(header, tiffSigLE), bytes.HasPrefix(header, tiffSigBE):
		return KindTIFF, nil
	case bytes.HasPrefix(header, riffSig) && bytes.Equal(header[8:12], webpSig):
		return KindWebP, nil
	case bytes.HasPrefix(header, bmpSig):
		return KindBMP, nil
	}

	return KindUnknown, nil
}

// SniffFile reads the header of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads HeaderSize bytes from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return KindUnknown, errors.New("file too short to be an image")
		}
		return KindUnknown, err
	}

	return DetectHeader(header)
}

var inputExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// HasInputExtension reports whether path carries one of the extensions a
// file picker would offer for conversion input.
func HasInputExtension(path string) bool {
	return inputExtensions[strings.ToLower(filepath.Ext(path))]
}
