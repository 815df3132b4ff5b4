package model

import (
	"cmp"
	"image"
	"net/url"

	"github.com/samber/lo"
)

// Icon is a decoded image that a website advertises as its icon.
//
// An Icon is only ever built from bytes that decoded successfully as a
// supported raster format, so Image is never nil for an Icon returned by
// the inference engine.
//
// Icons are ranked by pixel area (see Compare). Two icons are Equal when
// they share a Name and Size, which is enough to dedupe the same artwork
// served from one host under several URLs.
//
// Example:
//
//	icon := NewIcon("https://example.com/favicon.png", "png", rgba)
//	fmt.Println(icon.Name)   // "example.com"
//	fmt.Println(icon.Size()) // "32x32"
type Icon struct {
	// Source is the absolute URL the image was fetched from.
	Source string

	// Name is a display label derived from the source host.
	// Empty if the source has no host.
	Name string

	// Extension is the sniffed container format: png, ico, jpeg, gif, bmp or webp.
	Extension string

	// Image holds the decoded pixels. The Icon owns this buffer exclusively.
	Image *image.RGBA
}

// NewIcon creates an Icon for img fetched from source.
//
// Name is taken from the host of source. An unparsable source leaves
// Name empty rather than failing, since the name is only a label.
func NewIcon(source, extension string, img *image.RGBA) *Icon {
	var name string
	if u, err := url.Parse(source); err == nil {
		name = u.Hostname()
	}
	return &Icon{
		Source:    source,
		Name:      name,
		Extension: extension,
		Image:     img,
	}
}

// Size returns the pixel dimensions of the icon.
func (i *Icon) Size() Size {
	if i.Image == nil {
		return Size{}
	}
	b := i.Image.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Area returns width*height, the ranking key.
func (i *Icon) Area() int {
	return i.Size().Area()
}

// Compare orders icons by area, ascending.
// It returns -1 if i is smaller than other, +1 if larger and 0 on a tie.
func (i *Icon) Compare(other *Icon) int {
	return cmp.Compare(i.Area(), other.Area())
}

// Equal reports whether both icons have the same name and dimensions.
func (i *Icon) Equal(other *Icon) bool {
	return i.Name == other.Name && i.Size() == other.Size()
}

// Best returns the icon with the largest area, or nil for an empty slice.
//
// Ties go to the icon that appears first in icons; callers that want
// document order to win must pass icons in document order. Nil entries
// are ignored.
func Best(icons []*Icon) *Icon {
	icons = lo.Compact(icons)
	if len(icons) == 0 {
		return nil
	}
	return lo.MaxBy(icons, func(a, b *Icon) bool {
		return a.Compare(b) > 0
	})
}
