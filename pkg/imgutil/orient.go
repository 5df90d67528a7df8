package imgutil

import (
	"errors"
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

// OrientationNormal is the EXIF value for an image stored upright.
const OrientationNormal = 1

// ReadOrientation returns the EXIF orientation tag (1..8) of the image read
// from rs. Files without EXIF data report OrientationNormal.
func ReadOrientation(rs io.ReadSeeker) (int, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return OrientationNormal, err
	}

	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(rs, nil, true)
	if err != nil {
		if errorsIsNoExif(err) {
			return OrientationNormal, nil
		}
		return OrientationNormal, err
	}

	for _, tag := range tags {
		// IFD0 comes first; a later IFD1 entry describes the thumbnail
		if tag.TagName != "Orientation" {
			continue
		}
		if o := orientationValue(tag.Value, tag.FormattedFirst); o >= 1 && o <= 8 {
			return o, nil
		}
	}

	return OrientationNormal, nil
}

func orientationValue(v interface{}, formatted string) int {
	switch t := v.(type) {
	case []uint16:
		if len(t) > 0 {
			return int(t[0])
		}
	case uint16:
		return int(t)
	}
	n, err := strconv.Atoi(strings.TrimSpace(formatted))
	if err != nil {
		return 0
	}
	return n
}

func errorsIsNoExif(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exif.ErrNoExif) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no exif")
}

// ApplyOrientation returns img transformed so that it displays upright for
// the given EXIF orientation. Unknown values leave img untouched.
func ApplyOrientation(img image.Image, orientation int) image.Image {
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
