package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSize is returned by ParseSize for input not shaped like "WxH".
var ErrInvalidSize = errors.New("invalid size")

// Size is a pair of pixel dimensions.
type Size struct {
	Width  int
	Height int
}

// ParseSize parses dimensions written as "64x64".
//
// Both parts must be positive integers.
//
// Example:
//
//	size, err := ParseSize("256x128") // Size{Width: 256, Height: 128}
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q: %w", ErrInvalidSize, s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %q: %w", ErrInvalidSize, s, err)
	}
	if width <= 0 || height <= 0 {
		return Size{}, fmt.Errorf("%w: %q: dimensions must be positive", ErrInvalidSize, s)
	}
	return Size{Width: width, Height: height}, nil
}

// Area returns Width*Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
