package ioutils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	"image/png"

	ico "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration

	"github.com/handiism/nativefy/internal/model"
)

// DefaultMaxPixels is the largest declared width*height Decode accepts
// unless ImageService.MaxPixels says otherwise.
const DefaultMaxPixels = 4096 * 4096

// Image container formats recognised by SniffFormat.
const (
	FormatPNG  = "png"
	FormatICO  = "ico"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatWebP = "webp"
)

var (
	// ErrEmptyImage is returned for a zero-byte payload or an image without pixels.
	ErrEmptyImage = errors.New("empty image")

	// ErrUnsupportedFormat is returned when the payload is not a recognised
	// raster container (HTML error pages, SVG, plain text, ...).
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrImageTooLarge is returned when an image header declares more
	// pixels than ImageService.MaxPixels.
	ErrImageTooLarge = errors.New("image dimensions too large")
)

// SniffFormat identifies an image container from its leading bytes.
//
// The URL suffix and Content-Type of a response are not trusted; plenty of
// sites serve PNGs as "favicon.ico". Returns "" when no format matches.
//
// Example:
//
//	SniffFormat(pngBytes)            // "png"
//	SniffFormat([]byte("<!doctype")) // ""
func SniffFormat(data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG
	case bytes.HasPrefix(data, []byte{0x00, 0x00, 0x01, 0x00}):
		return FormatICO
	case bytes.HasPrefix(data, []byte{0xff, 0xd8, 0xff}):
		return FormatJPEG
	case bytes.HasPrefix(data, []byte("GIF8")):
		return FormatGIF
	case bytes.HasPrefix(data, []byte("BM")):
		return FormatBMP
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return FormatWebP
	}
	return ""
}

// ImageService decodes candidate icons and prepares them for bundling.
//
// ImageService is used to:
//   - Decode downloaded bytes into an RGBA pixel buffer
//   - Resize icons to fit a maximum size
//   - Encode icons as PNG for bundles
//
// ImageService is not modified by its methods and may be used from many
// goroutines at once.
//
// Example usage:
//
//	svc := NewImageService()
//
//	img, format, err := svc.Decode(data)
//	if err != nil {
//	    return err
//	}
//
//	// Shrink to fit within 256x256 and encode as PNG
//	small := svc.Resize(img, model.Size{Width: 256, Height: 256})
//	pngData, err := svc.EncodePNG(small)
type ImageService struct {
	// MaxPixels bounds the width*height an image header may declare.
	// Zero or negative means DefaultMaxPixels.
	MaxPixels int
}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{MaxPixels: DefaultMaxPixels}
}

// Decode decodes data into a freshly allocated RGBA image.
//
// The format is sniffed from the bytes, never taken from the caller.
// ICO files are decoded with go-ico; the rest go through the image
// package registry (PNG, JPEG, GIF, BMP, WebP).
//
// The header is read first and images declaring more than MaxPixels
// pixels are rejected before any pixel buffer is allocated.
//
// Returns:
//   - ErrEmptyImage if data is empty or decodes to zero pixels
//   - ErrUnsupportedFormat if the container is not recognised
//   - ErrImageTooLarge if the declared dimensions exceed MaxPixels
//   - a wrapped decoder error if the bytes are corrupt
//
// Example:
//
//	img, format, err := svc.Decode(data)
//	// format == "png", img.Bounds() == (0,0)-(32,32)
func (s *ImageService) Decode(data []byte) (*image.RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}

	format := SniffFormat(data)
	if format == "" {
		return nil, "", ErrUnsupportedFormat
	}

	if err := s.checkDimensions(format, data); err != nil {
		return nil, "", err
	}

	var (
		img image.Image
		err error
	)
	if format == FormatICO {
		img, err = ico.Decode(bytes.NewReader(data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, "", fmt.Errorf("decoding %s: %w", format, err)
	}
	if img.Bounds().Empty() {
		return nil, "", fmt.Errorf("decoding %s: %w", format, ErrEmptyImage)
	}

	return toRGBA(img), format, nil
}

// checkDimensions reads only the image header and enforces MaxPixels.
func (s *ImageService) checkDimensions(format string, data []byte) error {
	var (
		cfg image.Config
		err error
	)
	if format == FormatICO {
		cfg, err = ico.DecodeConfig(bytes.NewReader(data))
	} else {
		cfg, _, err = image.DecodeConfig(bytes.NewReader(data))
	}
	if err != nil {
		return fmt.Errorf("decoding %s header: %w", format, err)
	}

	limit := s.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	// Computed in int64 to avoid overflow.
	if cfg.Width < 0 || cfg.Height < 0 || int64(cfg.Width)*int64(cfg.Height) > int64(limit) {
		return fmt.Errorf("decoding %s: %dx%d exceeds %d pixels: %w", format, cfg.Width, cfg.Height, limit, ErrImageTooLarge)
	}
	return nil
}

// Resize scales img down to fit within bound.
//
// The aspect ratio is preserved and images that already fit are copied at
// their original size; icons are never upscaled.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// A 512x256 icon becomes 256x128
//	small := svc.Resize(img, model.Size{Width: 256, Height: 256})
func (s *ImageService) Resize(img image.Image, bound model.Size) *image.RGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= bound.Width && height <= bound.Height {
		return toRGBA(img)
	}

	// Calculate new dimensions maintaining aspect ratio
	ratio := float64(width) / float64(height)
	if float64(bound.Width)/float64(bound.Height) > ratio {
		// Height is the limiting factor
		width = int(float64(bound.Height) * ratio)
		height = bound.Height
	} else {
		// Width is the limiting factor
		height = int(float64(bound.Width) / ratio)
		width = bound.Width
	}
	width = max(width, 1)
	height = max(height, 1)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// Square centres img on a transparent square canvas whose side is the
// larger of img's sides and minSide. The image itself is never scaled.
//
// Example:
//
//	// A 64x32 icon becomes 64x64 with 16 transparent rows above and below
//	sq := svc.Square(img, 32)
func (s *ImageService) Square(img image.Image, minSide int) *image.RGBA {
	bounds := img.Bounds()
	side := max(bounds.Dx(), bounds.Dy(), minSide)

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	offset := image.Pt((side-bounds.Dx())/2, (side-bounds.Dy())/2)
	draw.Draw(dst, bounds.Sub(bounds.Min).Add(offset), img, bounds.Min, draw.Src)
	return dst
}

// EncodePNG encodes img as PNG.
func (s *ImageService) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// toRGBA copies img into a new RGBA buffer anchored at the origin.
func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
