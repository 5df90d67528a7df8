package imgutil

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	xwebp "golang.org/x/image/webp"
)

// DefaultJPEGQuality matches the quality most encoders pick when none is given.
const DefaultJPEGQuality = 75

// ErrUnknownFormat is returned when a file's content matches no supported
// image signature.
var ErrUnknownFormat = errors.New("unrecognized image format")

// Codec decodes source files and encodes results to disk.
type Codec struct {
	// AutoOrient rotates JPEG sources upright according to their EXIF tag.
	AutoOrient bool
	// JPEGQuality is used for .jpg/.jpeg outputs; zero means DefaultJPEGQuality.
	JPEGQuality int
}

// Decode reads the image at path into memory.
func (c Codec) Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	kind, err := SniffReader(f)
	if err != nil {
		return nil, err
	}
	if kind == KindUnknown {
		return nil, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var img image.Image
	if kind == KindWebP {
		img, err = xwebp.Decode(f)
	} else {
		img, err = imaging.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}

	if c.AutoOrient && kind == KindJPEG {
		// a broken EXIF block is not worth failing the file over
		if o, oerr := ReadOrientation(f); oerr == nil {
			img = ApplyOrientation(img, o)
		}
	}

	return img, nil
}

// Encode writes img to path in the format implied by its extension,
// falling back to DefaultFormat. The file is written next to path and
// renamed into place, so concurrent writers to one path leave a single
// complete image behind.
func (c Codec) Encode(img image.Image, path string) error {
	format, _ := FormatFromPath(path)

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".imgcrop-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := c.encode(tmpFile, img, format); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return replaceFile(tmpFile.Name(), path)
}

func replaceFile(tmpPath, destPath string) error {
	if err := os.Rename(tmpPath, destPath); err == nil {
		return nil
	}
	if err := os.Remove(destPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.Rename(tmpPath, destPath)
}

func (c Codec) encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatWebP:
		if err := webp.Encode(w, img, &webp.Options{Lossless: true}); err != nil {
			return fmt.Errorf("encode webp: %w", err)
		}
		return nil
	default:
		quality := c.JPEGQuality
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		if err := imaging.Encode(w, img, format.imagingFormat(), imaging.JPEGQuality(quality)); err != nil {
			return fmt.Errorf("encode %s: %w", format, err)
		}
		return nil
	}
}

// Info describes an image file without decoding its pixels.
type Info struct {
	Kind        Kind
	Width       int
	Height      int
	Orientation int
}

// Inspect sniffs the file at path and reads its dimensions and orientation.
func Inspect(path string) (Info, error) {
	info := Info{Orientation: OrientationNormal}

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	if info.Kind, err = SniffReader(f); err != nil {
		return info, err
	}
	if info.Kind == KindUnknown {
		return info, fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return info, err
	}

	var cfg image.Config
	if info.Kind == KindWebP {
		cfg, err = xwebp.DecodeConfig(f)
	} else {
		cfg, _, err = image.DecodeConfig(f)
	}
	if err != nil {
		return info, fmt.Errorf("decode %s header: %w", info.Kind, err)
	}
	info.Width, info.Height = cfg.Width, cfg.Height

	if info.Kind == KindJPEG {
		if o, oerr := ReadOrientation(f); oerr == nil {
			info.Orientation = o
		}
	}

	return info, nil
}
