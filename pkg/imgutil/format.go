package imgutil

import (
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is an output encoding chosen from a destination file name.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatGIF
	FormatWebP
	FormatTIFF
	FormatBMP
)

// DefaultFormat is used when the destination extension is missing or unknown.
const DefaultFormat = FormatPNG

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatWebP:
		return "webp"
	case FormatTIFF:
		return "tiff"
	case FormatBMP:
		return "bmp"
	default:
		return "png"
	}
}

var formatsByExt = map[string]Format{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"gif":  FormatGIF,
	"webp": FormatWebP,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
	"bmp":  FormatBMP,
}

// Ext returns the lowercased extension of path without the leading dot.
func Ext(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// FormatFromPath maps the extension of path to an output format. The second
// return value reports whether the extension was recognised; when it is
// false the returned format is DefaultFormat.
func FormatFromPath(path string) (Format, bool) {
	f, ok := formatsByExt[Ext(path)]
	if !ok {
		return DefaultFormat, false
	}
	return f, true
}

func (f Format) imagingFormat() imaging.Format {
	switch f {
	case FormatJPEG:
		return imaging.JPEG
	case FormatGIF:
		return imaging.GIF
	case FormatTIFF:
		return imaging.TIFF
	case FormatBMP:
		return imaging.BMP
	default:
		return imaging.PNG
	}
}
