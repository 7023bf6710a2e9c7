package processor

import (
	"image"
	"os"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"

	"webpconv/pkg/imgutil"
)

// readOrientation returns the EXIF Orientation value (1..8) of the file at
// path, or 1 when the file carries none.
func readOrientation(path string, kind imgutil.Kind) (int, error) {
	if kind != imgutil.KindJPEG && kind != imgutil.KindTIFF {
		return 1, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 1, err
	}
	defer f.Close()

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(f, nil, true)
	if err != nil {
		// A missing or broken EXIF block never stops a conversion.
		return 1, nil
	}

	for _, tag := range tags {
		if tag.TagName != "Orientation" || tag.IfdPath != "IFD" {
			continue
		}
		if v, ok := tag.Value.([]uint16); ok && len(v) > 0 {
			if v[0] >= 1 && v[0] <= 8 {
				return int(v[0]), nil
			}
		}
	}
	return 1, nil
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
