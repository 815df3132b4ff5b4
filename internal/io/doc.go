// Package ioutils provides image decoding and file system helpers.
//
// This package contains functions for:
//   - Sniffing and decoding icon image data
//   - Image resizing and PNG encoding
//   - Filename sanitization for cross-platform compatibility
//   - File and directory creation
//
// # Image Decoding
//
// The ImageService turns downloaded bytes into RGBA pixels:
//
//	svc := ioutils.NewImageService()
//
//	img, format, err := svc.Decode(data)
//	if errors.Is(err, ioutils.ErrUnsupportedFormat) {
//	    // not an image (HTML error page, SVG, ...)
//	}
//
// Supported containers: PNG, ICO, JPEG, GIF, BMP and WebP.
//
// # Filename Sanitization
//
// Use SanitizeFileName to remove invalid characters from filenames:
//
//	safe := ioutils.SanitizeFileName("Mail: Inbox") // Returns "Mail_ Inbox"
package ioutils
