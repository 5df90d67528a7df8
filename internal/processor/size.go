package processor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat        = errors.New("invalid size format, use WxH (e.g. 400x300)")
	ErrInvalidWidth         = errors.New("invalid width, must be a positive integer")
	ErrInvalidHeight        = errors.New("invalid height, must be a positive integer")
	ErrNonPositiveDimension = errors.New("width and height must be positive integers")
)

// ParseSize parses a "WxH" string such as "400x300".
func ParseSize(s string) (Size, error) {
	parts := strings.Split(s, "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	width, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidWidth, parts[0])
	}
	height, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidHeight, parts[1])
	}

	if width == 0 || height == 0 {
		return Size{}, fmt.Errorf("%w: %q", ErrNonPositiveDimension, s)
	}

	return Size{Width: int(width), Height: int(height)}, nil
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
