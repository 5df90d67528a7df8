package imgutil

import (
	"errors"
	"io"
	"os"
)

// Kind identifies the encoded content of an image file.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindGIF
	KindWebP
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpeg"
	case KindPNG:
		return "png"
	case KindGIF:
		return "gif"
	case KindWebP:
		return "webp"
	default:
		return "unknown"
	}
}

// headerLen is enough to cover the longest signature (RIFF....WEBP).
const headerLen = 12

var (
	pngSig   = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig  = []byte{0xff, 0xd8, 0xff}
	gif87Sig = []byte("GIF87a")
	gif89Sig = []byte("GIF89a")
	riffSig  = []byte("RIFF")
	webpSig  = []byte("WEBP")
)

// DetectHeader inspects the leading bytes of a file for known signatures.
// Headers shorter than a signature never match it.
func DetectHeader(header []byte) Kind {
	switch {
	case hasPrefix(header, jpegSig):
		return KindJPEG
	case hasPrefix(header, pngSig):
		return KindPNG
	case hasPrefix(header, gif87Sig), hasPrefix(header, gif89Sig):
		return KindGIF
	case hasPrefix(header, riffSig) && len(header) >= headerLen && hasPrefix(header[8:], webpSig):
		return KindWebP
	}
	return KindUnknown
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

// SniffReader reads up to headerLen bytes from r and determines its type.
// A short or empty stream is not an error; it just sniffs as KindUnknown.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, headerLen)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return KindUnknown, err
	}

	return DetectHeader(header[:n]), nil
}

func hasPrefix(buf, prefix []byte) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := range prefix {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
